// Package handler exposes the parsed question set over HTTP for the
// host-page widget. Grading is deliberately absent from this surface: the
// consumer grades client-side against the specs in the payload.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/quizmark/quizmark/internal/i18n"
	"github.com/quizmark/quizmark/internal/markdown"
	"github.com/quizmark/quizmark/internal/quiz"
)

// Config carries presentation passthroughs for the payload.
type Config struct {
	Theme string
	Lang  map[string]string
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	ctrl     *quiz.Controller
	renderer markdown.Renderer
	shuffler *quiz.Shuffler
	config   Config
}

// New creates a new Handler.
func New(ctrl *quiz.Controller, renderer markdown.Renderer, shuffler *quiz.Shuffler, cfg Config) *Handler {
	return &Handler{ctrl: ctrl, renderer: renderer, shuffler: shuffler, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Get("/api/quiz", h.handleQuiz)
	r.Get("/api/groups", h.handleGroups)
	r.Post("/api/groups", h.handleSetGroups)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleQuiz runs the full pipeline and returns a freshly selected,
// shuffled question set. Every request is a fresh run, which is also how
// the widget's reload works.
func (h *Handler) handleQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	docs := h.ctrl.Run(ctx)

	payload := QuizPayload{
		Questions: make([]QuestionPayload, 0, len(docs)),
		Theme:     h.config.Theme,
		Lang:      h.displayStrings(r),
	}
	for _, doc := range docs {
		payload.Questions = append(payload.Questions, buildQuestion(doc, h.renderer, h.shuffler))
		payload.Assets.Math = payload.Assets.Math || doc.NeedsMathRenderer()
		payload.Assets.Diagram = payload.Assets.Diagram || doc.NeedsDiagramRenderer()
		payload.Assets.Highlight = payload.Assets.Highlight || doc.NeedsHighlighter()
	}
	if len(docs) == 0 {
		payload.Message = appI18n.T(ctx, "NoQuestions")
	}

	writeJSON(w, payload)
}

func (h *Handler) handleGroups(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, GroupsPayload{
		Groups:   h.ctrl.GroupNames(),
		Selected: h.ctrl.SelectedGroups(),
	})
}

// handleSetGroups replaces the active group selection. Unknown names are
// skipped; an empty selection auto-corrects to all groups. The next quiz
// request runs the pipeline against the new selection.
func (h *Handler) handleSetGroups(w http.ResponseWriter, r *http.Request) {
	if !h.ctrl.Grouped() {
		http.Error(w, "questions are not grouped", http.StatusBadRequest)
		return
	}
	var req struct {
		Selected []string `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.ctrl.SetGroups(req.Selected)
	h.handleGroups(w, r)
}

// displayStrings resolves the widget's display strings: localized defaults,
// shadowed by any lang.* configuration overrides.
func (h *Handler) displayStrings(r *http.Request) map[string]string {
	ctx := r.Context()
	out := map[string]string{
		"correct":   appI18n.T(ctx, "Correct"),
		"incorrect": appI18n.T(ctx, "Incorrect"),
		"check":     appI18n.T(ctx, "Check"),
		"help":      appI18n.T(ctx, "Help"),
		"true":      appI18n.T(ctx, "True"),
		"false":     appI18n.T(ctx, "False"),
		"reload":    appI18n.T(ctx, "Reload"),
	}
	for k, v := range h.config.Lang {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
