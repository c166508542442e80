package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/nlebedev/discotek/internal/handlers"
	"github.com/nlebedev/discotek/internal/handlers/middleware"
	"github.com/nlebedev/discotek/internal/repository/postgres"
	"github.com/nlebedev/discotek/internal/service/album"
	"github.com/nlebedev/discotek/internal/service/auth"
	"github.com/nlebedev/discotek/internal/service/auth/tokenmanager"
	"github.com/nlebedev/discotek/internal/testutil"
)

type Services struct {
	AuthService  *auth.AuthService
	AlbumService *album.AlbumService
}

// Run the full router on repositories bound to a single transaction that is
// rolled back at test end. The db remains unchanged between scenarios.
func RunTx(dbpool *pgxpool.Pool, t *testing.T, fn func(srvURL string, s Services)) {
	testutil.InTx(dbpool, t, func(tx pgx.Tx) {
		storage := postgres.NewStorage(tx)

		tokenManager, err := tokenmanager.New(tokenmanager.Config{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
		})
		require.NoError(t, err, "token manager should be created without errors")

		as, err := auth.NewService(auth.Config{}, tokenManager, storage.User())
		require.NoError(t, err, "auth service starting error")

		als, err := album.NewService(storage.Album())
		require.NoError(t, err, "album service starting error")

		router := handlers.NewRouter(
			handlers.NewAuth(as),
			handlers.NewAlbum(als),
			middleware.AuthMiddleware(as),
		)

		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(srv.URL, Services{
			AuthService:  as,
			AlbumService: als,
		})
	})
}
