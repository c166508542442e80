package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nlebedev/discotek/internal/apperrors"
	"github.com/nlebedev/discotek/internal/handlers/render"
	"github.com/nlebedev/discotek/internal/models"
	"github.com/nlebedev/discotek/internal/repository"
)

type albumService interface {
	Create(ctx context.Context, arg repository.AlbumParams) (models.Album, error)
	Get(ctx context.Context, albumID uuid.UUID) (models.Album, error)
	List(ctx context.Context) ([]models.Album, error)
	Update(ctx context.Context, albumID uuid.UUID, arg repository.AlbumParams) (models.Album, error)
	Delete(ctx context.Context, albumID uuid.UUID) error
}

// Body shared by create and update requests
type AlbumRequest struct {
	Artist string `json:"artist" validate:"required,min=3,max=50"`
	Title  string `json:"title" validate:"required,min=3,max=50"`
	Year   int    `json:"year" validate:"required,gte=1900,lte=2100"`
	Genre  string `json:"genre" validate:"required"`
	Tracks int    `json:"tracks" validate:"required,gte=1,lte=100"`
}

type AlbumResponse struct {
	ID        uuid.UUID `json:"id"`
	Artist    string    `json:"artist"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	Genre     string    `json:"genre"`
	Tracks    int       `json:"tracks"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AlbumHandler struct {
	albumService albumService
}

func NewAlbum(albumService albumService) *AlbumHandler {
	return &AlbumHandler{albumService: albumService}
}

func (h *AlbumHandler) list(w http.ResponseWriter, r *http.Request) {
	type ListResponse struct {
		Albums []AlbumResponse `json:"albums"`
	}

	albums, err := h.albumService.List(r.Context())
	if err != nil {
		render.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	res := ListResponse{Albums: make([]AlbumResponse, 0, len(albums))}
	for _, a := range albums {
		res.Albums = append(res.Albums, albumToResponse(a))
	}

	render.JSON(w, res)
}

func (h *AlbumHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.Error(w, "Album not found", http.StatusNotFound)
		return
	}

	album, err := h.albumService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlbumNotFound):
			render.Error(w, "Album not found", http.StatusNotFound)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, albumToResponse(album))
}

func (h *AlbumHandler) create(w http.ResponseWriter, r *http.Request) {
	type CreateResponse struct {
		Message string        `json:"message"`
		Album   AlbumResponse `json:"album"`
	}

	data, err := render.BindAndValidate[AlbumRequest](w, r)
	if err != nil {
		return
	}

	album, err := h.albumService.Create(r.Context(), albumToParams(data))
	if err != nil {
		render.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSONWithStatus(w, CreateResponse{
		Message: "New album upload success",
		Album:   albumToResponse(album),
	}, http.StatusCreated)
}

func (h *AlbumHandler) update(w http.ResponseWriter, r *http.Request) {
	type UpdateResponse struct {
		Message string        `json:"message"`
		Album   AlbumResponse `json:"album"`
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.Error(w, "Album not found", http.StatusNotFound)
		return
	}

	data, err := render.BindAndValidate[AlbumRequest](w, r)
	if err != nil {
		return
	}

	album, err := h.albumService.Update(r.Context(), id, albumToParams(data))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlbumNotFound):
			render.Error(w, "Album not found", http.StatusNotFound)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, UpdateResponse{
		Message: "Album edit success",
		Album:   albumToResponse(album),
	})
}

func (h *AlbumHandler) delete(w http.ResponseWriter, r *http.Request) {
	type DeleteResponse struct {
		Message string `json:"message"`
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.Error(w, "Album not found", http.StatusNotFound)
		return
	}

	err = h.albumService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlbumNotFound):
			render.Error(w, "Album not found", http.StatusNotFound)
		default:
			render.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, DeleteResponse{Message: "Album deleted successfully"})
}

func albumToParams(req AlbumRequest) repository.AlbumParams {
	return repository.AlbumParams{
		Artist: req.Artist,
		Title:  req.Title,
		Year:   req.Year,
		Genre:  req.Genre,
		Tracks: req.Tracks,
	}
}

func albumToResponse(a models.Album) AlbumResponse {
	return AlbumResponse{
		ID:        a.ID,
		Artist:    a.Artist,
		Title:     a.Title,
		Year:      a.Year,
		Genre:     a.Genre,
		Tracks:    a.Tracks,
		UpdatedAt: a.UpdatedAt,
	}
}
