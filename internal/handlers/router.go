package handlers

import (
	"net/http"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	auth *AuthHandler,
	album *AlbumHandler,
	authMiddleware func(http.Handler) http.Handler,
	mds ...func(http.Handler) http.Handler,
) http.Handler {
	withAuth := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", auth.register)
	mux.HandleFunc("POST /auth/login", auth.login)
	mux.HandleFunc("POST /auth/refresh", auth.refresh)
	mux.HandleFunc("POST /auth/logout", auth.logout)

	mux.Handle("GET /album", withAuth(album.list))
	mux.Handle("POST /album", withAuth(album.create))
	mux.Handle("GET /album/{id}", withAuth(album.get))
	mux.Handle("PUT /album/{id}", withAuth(album.update))
	mux.Handle("DELETE /album/{id}", withAuth(album.delete))

	return chain(mux, mds...)
}
