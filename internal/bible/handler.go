package bible

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taiwoajasa245/bible-api/pkg/response"
)

type BibleHandler struct {
	service BibleService
	logger  *zap.Logger
}

func NewBibleHandler(service BibleService, logger *zap.Logger) BibleHandler {
	return BibleHandler{service: service, logger: logger.Named("bible.handler")}
}

func (h *BibleHandler) GetBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ListBooks(r.Context())
	if err != nil {
		h.fail(w, r, err, "There was an error when fetching books")
		return
	}

	response.Success(w, books)
}

func (h *BibleHandler) GetChaptersHandler(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")

	chapters, err := h.service.ListChapters(r.Context(), book)
	if err != nil {
		h.fail(w, r, err, "There was an error when fetching chapters")
		return
	}

	response.Success(w, chapters)
}

func (h *BibleHandler) GetVersesByChapterHandler(w http.ResponseWriter, r *http.Request) {
	book := chi.URLParam(r, "book")
	chapter, err := parseChapter(chi.URLParam(r, "chapter"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid chapter")
		return
	}

	verses, err := h.service.ListVersesInChapter(r.Context(), book, chapter)
	if err != nil {
		h.fail(w, r, err, "There was an error when fetching verses")
		return
	}

	response.Success(w, verses)
}

func (h *BibleHandler) SearchVersesHandler(w http.ResponseWriter, r *http.Request) {
	searchText := chi.URLParam(r, "searchText")

	verses, err := h.service.SearchVerses(r.Context(), searchText)
	if err != nil {
		h.fail(w, r, err, "There was an error when searching for verses")
		return
	}

	response.Success(w, verses)
}

func (h *BibleHandler) GetVerseHandler(w http.ResponseWriter, r *http.Request) {
	verseID, err := parseVerseID(chi.URLParam(r, "verseId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verseId")
		return
	}

	verse, err := h.service.GetVerse(r.Context(), verseID)
	if err != nil {
		h.fail(w, r, err, "There was an error when fetching the verse")
		return
	}

	response.Success(w, verse)
}

// ListVersesHandler lists every verse, or only ?verseId= when present.
func (h *BibleHandler) ListVersesHandler(w http.ResponseWriter, r *http.Request) {
	var filter *int64
	if raw := r.URL.Query().Get("verseId"); raw != "" {
		verseID, err := parseVerseID(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid verseId")
			return
		}
		filter = &verseID
	}

	verses, err := h.service.ListVerses(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err, "There was an error when fetching verses")
		return
	}

	response.Success(w, verses)
}

func (h *BibleHandler) CreateVerseHandler(w http.ResponseWriter, r *http.Request) {
	var req NewVerse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	verse, err := h.service.CreateVerse(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "There was an error when creating a verse")
		return
	}

	response.Created(w, verse)
}

func (h *BibleHandler) UpdateVerseHandler(w http.ResponseWriter, r *http.Request) {
	verseID, err := parseVerseID(chi.URLParam(r, "verseId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verseId")
		return
	}

	var patch VersePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	verse, err := h.service.UpdateVerse(r.Context(), verseID, patch)
	if err != nil {
		h.fail(w, r, err, "There was an error when updating the verse")
		return
	}

	response.Success(w, verse)
}

func (h *BibleHandler) DeleteVerseHandler(w http.ResponseWriter, r *http.Request) {
	verseID, err := parseVerseID(chi.URLParam(r, "verseId"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid verseId")
		return
	}

	if err := h.service.DeleteVerse(r.Context(), verseID); err != nil {
		h.fail(w, r, err, "There was an error when deleting a verse")
		return
	}

	response.NoContent(w)
}

// fail maps service errors to a status code. Storage errors are logged and
// answered with the generic message only.
func (h *BibleHandler) fail(w http.ResponseWriter, r *http.Request, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(w, http.StatusNotFound, "Verse not found")
	case errors.Is(err, ErrNothingToUpdate):
		response.Error(w, http.StatusBadRequest, "No valid fields to update")
	default:
		h.logger.Error(message,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		response.Error(w, http.StatusInternalServerError, message)
	}
}

func parseVerseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

// parseChapter rejects values outside the INTEGER range of the chapter column.
func parseChapter(raw string) (int, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	return int(n), err
}
