package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taiwoajasa245/bible-api/internal/bible"
	"github.com/taiwoajasa245/bible-api/pkg/response"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(secureHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	s.loadBibleRoutes(r)

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to the Bible API"
	response.Success(w, resp)
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health()
	if stats["status"] != "up" {
		response.JSON(w, http.StatusServiceUnavailable, stats)
		return
	}
	response.Success(w, stats)
}

func (s *Server) loadBibleRoutes(router chi.Router) {
	bibleRepo := bible.NewRepository(s.db.DB(), s.logger)
	bibleService := bible.NewBibleService(bibleRepo, s.logger)
	bibleHandler := bible.NewBibleHandler(bibleService, s.logger)

	router.Get("/books", bibleHandler.GetBooksHandler)
	router.Get("/books/{book}/chapters", bibleHandler.GetChaptersHandler)
	router.Get("/books/{book}/chapters/{chapter}/verses", bibleHandler.GetVersesByChapterHandler)
	router.Get("/search/{searchText}", bibleHandler.SearchVersesHandler)

	router.Get("/verses", bibleHandler.ListVersesHandler)
	router.Post("/verses", bibleHandler.CreateVerseHandler)
	router.Get("/verses/{verseId}", bibleHandler.GetVerseHandler)
	router.Put("/verses/{verseId}", bibleHandler.UpdateVerseHandler)
	router.Delete("/verses/{verseId}", bibleHandler.DeleteVerseHandler)
}
