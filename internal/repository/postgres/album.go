package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nlebedev/discotek/internal/apperrors"
	"github.com/nlebedev/discotek/internal/models"
	"github.com/nlebedev/discotek/internal/repository"
)

type AlbumRepo struct {
	db DBTX
}

const createAlbum = `-- name: CreateAlbum
INSERT INTO albums (id, artist, title, year, genre, tracks)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, artist, title, year, genre, tracks, updated_at
`

func (r *AlbumRepo) CreateAlbum(ctx context.Context, arg repository.AlbumParams) (models.Album, error) {
	rows, _ := r.db.Query(ctx, createAlbum, uuid.New(), arg.Artist, arg.Title, arg.Year, arg.Genre, arg.Tracks)
	album, err := pgx.CollectOneRow(rows, rowToAlbum)
	if err != nil {
		return album, fmt.Errorf("db error: %w", err)
	}

	return album, nil
}

const getAlbum = `-- name: GetAlbum
SELECT id, artist, title, year, genre, tracks, updated_at
FROM albums
WHERE id = $1
`

func (r *AlbumRepo) GetAlbum(ctx context.Context, albumID uuid.UUID) (models.Album, error) {
	rows, _ := r.db.Query(ctx, getAlbum, albumID)
	album, err := pgx.CollectOneRow(rows, rowToAlbum)

	switch {
	case err == nil:
		return album, nil
	case errors.Is(err, pgx.ErrNoRows):
		return album, apperrors.ErrAlbumNotFound
	default:
		return album, fmt.Errorf("db error: %w", err)
	}
}

const listAlbums = `-- name: ListAlbums
SELECT id, artist, title, year, genre, tracks, updated_at
FROM albums
ORDER BY artist, title
`

func (r *AlbumRepo) ListAlbums(ctx context.Context) ([]models.Album, error) {
	rows, _ := r.db.Query(ctx, listAlbums)
	albums, err := pgx.CollectRows(rows, rowToAlbum)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return albums, nil
}

const updateAlbum = `-- name: UpdateAlbum
UPDATE albums
SET artist = $2, title = $3, year = $4, genre = $5, tracks = $6, updated_at = now()
WHERE id = $1
RETURNING id, artist, title, year, genre, tracks, updated_at
`

func (r *AlbumRepo) UpdateAlbum(ctx context.Context, albumID uuid.UUID, arg repository.AlbumParams) (models.Album, error) {
	rows, _ := r.db.Query(ctx, updateAlbum, albumID, arg.Artist, arg.Title, arg.Year, arg.Genre, arg.Tracks)
	album, err := pgx.CollectOneRow(rows, rowToAlbum)

	switch {
	case err == nil:
		return album, nil
	case errors.Is(err, pgx.ErrNoRows):
		return album, apperrors.ErrAlbumNotFound
	default:
		return album, fmt.Errorf("db error: %w", err)
	}
}

const deleteAlbum = `-- name: DeleteAlbum
DELETE FROM albums
WHERE id = $1
RETURNING id
`

func (r *AlbumRepo) DeleteAlbum(ctx context.Context, albumID uuid.UUID) error {
	rows, _ := r.db.Query(ctx, deleteAlbum, albumID)
	_, err := pgx.CollectOneRow(rows, pgx.RowTo[uuid.UUID])

	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrAlbumNotFound
	default:
		return fmt.Errorf("db error: %w", err)
	}
}

func rowToAlbum(row pgx.CollectableRow) (models.Album, error) {
	var a models.Album
	err := row.Scan(&a.ID, &a.Artist, &a.Title, &a.Year, &a.Genre, &a.Tracks, &a.UpdatedAt)
	return a, err
}
