package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nlebedev/discotek/internal/models"
)

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the same email exists must return apperrors.ErrEmailTaken
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by its id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// Set or clear (token == nil) the user's refresh token
	// Overwrites whatever token was stored before: last write wins
	// If user not found must return apperrors.ErrUserNotFound
	SetRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error
}

type AlbumParams struct {
	Artist string
	Title  string
	Year   int
	Genre  string
	Tracks int
}

// Album repository interface
// Every method that takes an album id must return apperrors.ErrAlbumNotFound
// if no album with such id exists
type AlbumRepo interface {
	CreateAlbum(ctx context.Context, arg AlbumParams) (models.Album, error)
	GetAlbum(ctx context.Context, albumID uuid.UUID) (models.Album, error)
	ListAlbums(ctx context.Context) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, albumID uuid.UUID, arg AlbumParams) (models.Album, error)
	DeleteAlbum(ctx context.Context, albumID uuid.UUID) error
}

// Storage aggregates all repositories over a single connection source
type Storage interface {
	User() UserRepo
	Album() AlbumRepo

	// Run fn within a database transaction
	InTx(ctx context.Context, fn func(Storage) error) error
}
