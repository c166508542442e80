package auth

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nlebedev/discotek/internal/service/auth"
	"github.com/nlebedev/discotek/internal/testutil"
	"github.com/nlebedev/discotek/tests/integration"
)

const (
	LogoutURL = "/auth/logout"
)

func logoutWith(t *testing.T, srvURL string, refreshToken string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, srvURL+LogoutURL, nil)
	require.NoError(t, err)
	if refreshToken != "" {
		req.AddCookie(&http.Cookie{Name: auth.RefreshCookieName, Value: refreshToken})
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "logout request should always complete")
	return resp
}

func Test_AuthLogout(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("logout without cookie is a no-op", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			resp := logoutWith(t, srvURL, "")
			defer resp.Body.Close() // nolint:errcheck

			require.Equal(t, http.StatusNoContent, resp.StatusCode)
		})
	})

	t.Run("logout revokes session and clears cookie", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			pair := registerAndLogin(t.Context(), t, s, "nk@example.com")

			resp := logoutWith(t, srvURL, pair.Refresh.Value)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer resp.Body.Close() // nolint:errcheck

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.JSONEq(t, `
				{
					"message": "Logged out successfully"
				}`, string(body))

			require.Equal(t, 1, len(resp.Cookies()))
			cookie := resp.Cookies()[0]
			require.Equal(t, auth.RefreshCookieName, cookie.Name)
			require.Empty(t, cookie.Value, "refresh cookie must be cleared")
			require.Less(t, cookie.MaxAge, 0, "refresh cookie must be expired")

			// The revoked token must not refresh anymore
			refreshResp := refreshWith(t, srvURL, pair.Refresh.Value)
			defer refreshResp.Body.Close() // nolint:errcheck
			require.Equal(t, http.StatusForbidden, refreshResp.StatusCode)
		})
	})

	t.Run("logout with unverifiable token still succeeds", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			resp := logoutWith(t, srvURL, "definitely-not-a-jwt")
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer resp.Body.Close() // nolint:errcheck

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.JSONEq(t, `
				{
					"message": "Logged out successfully"
				}`, string(body))
		})
	})

	t.Run("logout twice with same token is idempotent", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			pair := registerAndLogin(t.Context(), t, s, "nk@example.com")

			for range 2 {
				resp := logoutWith(t, srvURL, pair.Refresh.Value)
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				defer resp.Body.Close() // nolint:errcheck

				require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", string(body))
			}
		})
	})
}
