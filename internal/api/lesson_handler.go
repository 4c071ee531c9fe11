package api

import (
	"net/http"

	"github.com/simverse/simverse-api/internal/api/middleware"
	"github.com/simverse/simverse-api/internal/api/shared"
	"github.com/simverse/simverse-api/internal/domain"
	"github.com/simverse/simverse-api/internal/service"
)

// LessonHandler handles lesson generation and history endpoints.
type LessonHandler struct {
	lessons *service.LessonService
}

// NewLessonHandler creates a LessonHandler.
func NewLessonHandler(lessons *service.LessonService) *LessonHandler {
	return &LessonHandler{lessons: lessons}
}

// Generate handles POST /lessons.
func (h *LessonHandler) Generate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req LessonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	topic := domain.Topic{
		ID:          req.TopicID,
		Title:       req.Title,
		Description: req.Description,
	}

	lesson, err := h.lessons.GenerateLesson(r.Context(), accountID, topic, req.Level)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LessonResponse{
		Topic:   lesson.Topic,
		Level:   lesson.Level,
		Source:  string(lesson.Source),
		Content: lesson.Content,
	})
}

// History handles GET /history.
func (h *LessonHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := h.lessons.History(r.Context(), accountID)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	entries := make([]HistoryEntry, len(records))
	for i, rec := range records {
		entries[i] = HistoryEntry{
			ID:        rec.ID,
			Kind:      rec.Kind,
			Metadata:  rec.Metadata,
			CreatedAt: rec.CreatedAt,
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HistoryResponse{History: entries})
}
