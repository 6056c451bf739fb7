package server

import (
	"net/http"

	"jpnews/furigana"
	"jpnews/model"
)

type textRequest struct {
	Text string `json:"text"`
}

type furiganaResponse struct {
	Text         string                  `json:"text"`
	FuriganaData *model.AnnotationResult `json:"furigana_data,omitempty"`
	HTML         string                  `json:"html"`
}

// handleFurigana annotates text once and returns both the annotation list
// and the ruby rendering of it.
func (h *Handler) handleFurigana(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusOK, furiganaResponse{})
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	res := h.annotator.Annotate(ctx, req.Text)
	h.logger.Debug("furigana",
		"source", res.Source,
		"annotations", len(res.Furigana),
	)
	writeJSON(w, http.StatusOK, furiganaResponse{
		Text:         req.Text,
		FuriganaData: &res,
		HTML:         furigana.Render(res, furigana.FormatRuby),
	})
}

// handleGenerate returns text in the bracket notation used by the editor.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	writeJSON(w, http.StatusOK, map[string]string{
		"text": h.annotator.Render(ctx, req.Text, furigana.FormatBracket),
	})
}
