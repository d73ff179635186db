package server

import (
	"log"
	"net/http"

	"github.com/elijahkato/booklab-backend/internal/api"
	"github.com/elijahkato/booklab-backend/internal/config"
	"github.com/elijahkato/booklab-backend/internal/googlebooks"
	"github.com/elijahkato/booklab-backend/internal/mongodb"
)

// NewServer wires the route table. Auth is applied per route because the
// two verbs on /books/{volumeId} differ: GET is public (a token only adds
// the isAdded flag), DELETE requires one.
func NewServer(db *mongodb.DB, catalog *googlebooks.Client, cfg config.Config) http.Handler {
	a := api.NewAPI(db, catalog, cfg)
	requireAuth := AuthMiddleware(cfg.TokenSecret)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.RootHandler)

	mux.HandleFunc("GET /books", a.GetBooksHandler)
	mux.HandleFunc("GET /books/search", a.SearchHandler)
	mux.HandleFunc("GET /books/me", requireAuth(a.GetMyBooksHandler))
	mux.HandleFunc("GET /books/{volumeId}", a.GetBookViewHandler)
	mux.HandleFunc("POST /books/add", requireAuth(a.AddBookHandler))
	mux.HandleFunc("DELETE /books/{volumeId}", requireAuth(a.RemoveMyBookHandler))

	mux.HandleFunc("POST /users/register", a.RegisterHandler)
	mux.HandleFunc("POST /users/login", a.LoginHandler)

	var handler http.Handler = mux
	handler = CorsMiddleware(cfg.AllowedOrigins)(handler)
	handler = RequestIdMiddleware(handler)

	return handler
}

func ListenAndServe(db *mongodb.DB, catalog *googlebooks.Client, cfg config.Config) error {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: NewServer(db, catalog, cfg),
	}

	log.Printf("Server is running on port %s", cfg.Port)
	return server.ListenAndServe()
}
