package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/entity"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/formatter"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/logger"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/response"
	"github.com/dixonjohgithub/ai-intake-mvp-sub000/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type Handler struct {
	interview  InterviewUsecase
	records    RecordUsecase
	validator  *validator.Validator
	formatters *formatter.Factory
	// dedup caches responses by session + request id so client retries of
	// the same submission do not double-append the answer.
	dedup *gocache.Cache
}

func NewHandler(
	interview InterviewUsecase,
	records RecordUsecase,
	v *validator.Validator,
	dedup *gocache.Cache,
) *Handler {
	return &Handler{
		interview:  interview,
		records:    records,
		validator:  v,
		formatters: formatter.NewFactory(),
		dedup:      dedup,
	}
}

// StartSession handles POST /intake-session - start a new interview.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "StartSession")

	var req entity.StartSessionRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
			response.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sessionID := uuid.New().String()
	state := entity.NewConversationState(sessionID)
	first := h.interview.FirstQuestion()

	state.Transcript = append(state.Transcript, entity.Message{
		Role:    entity.RoleAssistant,
		Content: first.Prompt,
	})

	ctxzap.Info(ctx, "interview session started",
		zap.String("session_id", sessionID),
		zap.String("initiator", req.Initiator))

	response.Created(w, &entity.StartSessionResponse{
		SessionID: sessionID,
		Question:  toQuestionDTO(first),
		State:     state,
	})
}

// Advance handles POST /intake-session/{id}/answer - submit one answer.
// The request carries the caller-owned conversation state; the response
// echoes the updated state. A repeated X-Request-ID within the dedup window
// returns the previously computed response without re-running the sequencer.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	requestID := r.Header.Get("X-Request-ID")

	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Advance"),
	)

	var req entity.AdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validator.ValidateAdvance(&req); err != nil {
		ctxzap.Error(ctx, "failed to validate request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	dedupKey := fmt.Sprintf("%s:%s", sessionID, requestID)
	if requestID != "" {
		if cached, ok := h.dedup.Get(dedupKey); ok {
			ctxzap.Info(ctx, "returning cached response for replayed request",
				zap.String("x_request_id", requestID))
			response.Success(w, cached)
			return
		}
	}

	req.State.SessionID = sessionID
	wasOngoing := req.State.CurrentQuestion <= h.interview.Questionnaire().Total()

	outcome, err := h.interview.Advance(ctx, req.State, req.Answer)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	resp := toAdvanceResponse(outcome, req.State)

	// First transition into the terminal state finalizes the record.
	if outcome.Kind == entity.OutcomeComplete && wasOngoing {
		if _, err := h.records.Complete(ctx, req.State); err != nil {
			ctxzap.Error(ctx, "failed to finalize intake record", zap.Error(err))
			response.Error(w, http.StatusInternalServerError, "failed to finalize intake record")
			return
		}
	}

	if requestID != "" {
		h.dedup.Set(dedupKey, resp, gocache.DefaultExpiration)
	}

	response.Success(w, resp)
}

// GetResult handles GET /intake-session/{id}/result - export the completed
// intake record as markdown, PDF or DOCX.
func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetResult"),
	)

	format, err := h.validator.ValidateResultFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.records.Get(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	if format == entity.FormatMarkdown && r.URL.Query().Get("download") == "" {
		response.Success(w, toRecordDTO(rec))
		return
	}

	f, err := h.formatters.Create(format)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := f.Format(h.records.Render(rec))
	if err != nil {
		ctxzap.Error(ctx, "failed to format result", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "failed to format result")
		return
	}

	response.Attachment(w, f.ContentType(), "intake-"+rec.ID+f.FileExtension(), body)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrEmptyAnswer),
		errors.Is(err, entity.ErrInvalidQuestionNumber),
		errors.Is(err, entity.ErrInvalidFollowUpCount),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidParameter),
		errors.Is(err, entity.ErrNilState):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrQuestionNotFound),
		errors.Is(err, entity.ErrRecordNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrInterviewOngoing):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		ctxzap.Error(ctx, "internal error", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
