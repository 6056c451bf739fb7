package server

import (
	"errors"
	"net/http"
	"strings"

	"jpnews/store"
)

type newsRequest struct {
	Title      string `json:"title"`
	YouTubeURL string `json:"youtube_url"`
}

type noteRequest struct {
	JapaneseText string `json:"japanese_text"`
	ChineseNotes string `json:"chinese_notes"`
	TextStyle    string `json:"text_style"`
	Order        int    `json:"order"`
}

func (n noteRequest) input() store.NoteInput {
	return store.NoteInput{
		JapaneseText: n.JapaneseText,
		ChineseNotes: n.ChineseNotes,
		TextStyle:    n.TextStyle,
		Order:        n.Order,
	}
}

// writeStoreError maps store errors onto HTTP statuses.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrEmptyTitle):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("store failure", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// --- News ---

func (h *Handler) handleListNews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	news, err := h.repo.ListNews(ctx)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (h *Handler) handleCreateNews(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	news, err := h.repo.CreateNews(ctx, store.NewsInput{Title: req.Title, YouTubeURL: req.YouTubeURL})
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (h *Handler) handleGetNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	news, err := h.repo.GetNews(ctx, id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (h *Handler) handleUpdateNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req newsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	news, err := h.repo.UpdateNews(ctx, id, store.NewsInput{Title: req.Title, YouTubeURL: req.YouTubeURL})
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

func (h *Handler) handleDeleteNews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.repo.DeleteNews(ctx, id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "News deleted successfully"})
}

func (h *Handler) handleSearchNews(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	news, err := h.repo.SearchNews(ctx, keyword)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

// --- Notes ---

func (h *Handler) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	newsID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req noteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	note, err := h.repo.CreateNote(ctx, newsID, req.input())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req noteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	note, err := h.repo.UpdateNote(ctx, id, req.input())
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *Handler) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	if err := h.repo.DeleteNote(ctx, id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}

func (h *Handler) handleSearchNotes(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	notes, err := h.repo.SearchNotes(ctx, keyword)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}
