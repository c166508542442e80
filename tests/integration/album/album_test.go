package album

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nlebedev/discotek/internal/testutil"
	"github.com/nlebedev/discotek/tests/integration"
)

const (
	AlbumURL = "/album"
)

type albumResponse struct {
	ID     string `json:"id"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
	Year   int    `json:"year"`
	Genre  string `json:"genre"`
	Tracks int    `json:"tracks"`
}

// Register a user, log in and return a Bearer access token for album requests
func accessToken(ctx context.Context, t *testing.T, s integration.Services) string {
	t.Helper()

	_, err := s.AuthService.Register(ctx, "Nikolai", "nk@example.com", "StrongEnoughPassword")
	require.NoError(t, err)

	pair, err := s.AuthService.Login(ctx, "nk@example.com", "StrongEnoughPassword")
	require.NoError(t, err)

	return pair.Access.Value
}

func doJSON(t *testing.T, method string, url string, token string, data string) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if data != "" {
		reqBody = strings.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	return resp, string(body)
}

func Test_Albums(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	darkSide := `{"artist": "Pink Floyd", "title": "The Dark Side of the Moon", "year": 1973, "genre": "Rock", "tracks": 10}`

	t.Run("album routes require auth", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			resp, body := doJSON(t, http.MethodGet, srvURL+AlbumURL, "", "")

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"message": "Unauthorized"}`, body)
		})
	})

	t.Run("create then fetch returns the same album", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			token := accessToken(t.Context(), t, s)

			resp, body := doJSON(t, http.MethodPost, srvURL+AlbumURL, token, darkSide)
			require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)

			var created struct {
				Message string        `json:"message"`
				Album   albumResponse `json:"album"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &created))
			require.Equal(t, "New album upload success", created.Message)
			require.NotEmpty(t, created.Album.ID)

			resp, body = doJSON(t, http.MethodGet, srvURL+AlbumURL+"/"+created.Album.ID, token, "")
			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var fetched albumResponse
			require.NoError(t, json.Unmarshal([]byte(body), &fetched))
			require.Equal(t, created.Album, fetched)
			require.Equal(t, "Pink Floyd", fetched.Artist)
			require.Equal(t, 1973, fetched.Year)
		})
	})

	t.Run("list returns albums ordered by artist then title", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			token := accessToken(t.Context(), t, s)

			albums := []string{
				`{"artist": "Pink Floyd", "title": "Wish You Were Here", "year": 1975, "genre": "Rock", "tracks": 5}`,
				`{"artist": "Miles Davis", "title": "Kind of Blue", "year": 1959, "genre": "Jazz", "tracks": 5}`,
				`{"artist": "Pink Floyd", "title": "Animals", "year": 1977, "genre": "Rock", "tracks": 5}`,
			}
			for _, a := range albums {
				resp, body := doJSON(t, http.MethodPost, srvURL+AlbumURL, token, a)
				require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)
			}

			resp, body := doJSON(t, http.MethodGet, srvURL+AlbumURL, token, "")
			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var listed struct {
				Albums []albumResponse `json:"albums"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &listed))
			require.Len(t, listed.Albums, 3)
			require.Equal(t, "Kind of Blue", listed.Albums[0].Title)
			require.Equal(t, "Animals", listed.Albums[1].Title)
			require.Equal(t, "Wish You Were Here", listed.Albums[2].Title)
		})
	})

	t.Run("update changes album fields", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			token := accessToken(t.Context(), t, s)

			resp, body := doJSON(t, http.MethodPost, srvURL+AlbumURL, token, darkSide)
			require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)

			var created struct {
				Album albumResponse `json:"album"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &created))

			updated := `{"artist": "Pink Floyd", "title": "The Dark Side of the Moon", "year": 1973, "genre": "Progressive Rock", "tracks": 10}`
			resp, body = doJSON(t, http.MethodPut, srvURL+AlbumURL+"/"+created.Album.ID, token, updated)
			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
			require.Contains(t, body, "Album edit success")

			resp, body = doJSON(t, http.MethodGet, srvURL+AlbumURL+"/"+created.Album.ID, token, "")
			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)

			var fetched albumResponse
			require.NoError(t, json.Unmarshal([]byte(body), &fetched))
			require.Equal(t, "Progressive Rock", fetched.Genre)
		})
	})

	t.Run("delete twice reports not found", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			token := accessToken(t.Context(), t, s)

			resp, body := doJSON(t, http.MethodPost, srvURL+AlbumURL, token, darkSide)
			require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)

			var created struct {
				Album albumResponse `json:"album"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &created))

			resp, body = doJSON(t, http.MethodDelete, srvURL+AlbumURL+"/"+created.Album.ID, token, "")
			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", body)
			require.JSONEq(t, `{"message": "Album deleted successfully"}`, body)

			resp, body = doJSON(t, http.MethodDelete, srvURL+AlbumURL+"/"+created.Album.ID, token, "")
			require.Equalf(t, http.StatusNotFound, resp.StatusCode, "second delete must report not found. Body: %s", body)
			require.JSONEq(t, `{"message": "Album not found"}`, body)
		})
	})
}
