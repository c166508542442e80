package album

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nlebedev/discotek/internal/models"
	"github.com/nlebedev/discotek/internal/repository"
)

// Thin catalog service: structural validation happens at the handler
// boundary, persistence invariants live in the repository
type AlbumService struct {
	albumRepo repository.AlbumRepo
}

func NewService(albumRepo repository.AlbumRepo) (*AlbumService, error) {
	if albumRepo == nil {
		return nil, errors.New("album repo must not be nil")
	}

	return &AlbumService{albumRepo: albumRepo}, nil
}

func (s *AlbumService) Create(ctx context.Context, arg repository.AlbumParams) (models.Album, error) {
	return s.albumRepo.CreateAlbum(ctx, arg)
}

func (s *AlbumService) Get(ctx context.Context, albumID uuid.UUID) (models.Album, error) {
	return s.albumRepo.GetAlbum(ctx, albumID)
}

func (s *AlbumService) List(ctx context.Context) ([]models.Album, error) {
	return s.albumRepo.ListAlbums(ctx)
}

func (s *AlbumService) Update(ctx context.Context, albumID uuid.UUID, arg repository.AlbumParams) (models.Album, error) {
	return s.albumRepo.UpdateAlbum(ctx, albumID, arg)
}

func (s *AlbumService) Delete(ctx context.Context, albumID uuid.UUID) error {
	return s.albumRepo.DeleteAlbum(ctx, albumID)
}
