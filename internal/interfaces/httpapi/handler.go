package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-relevance/internal/domain/relevance"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
	"github.com/riskibarqy/match-relevance/internal/usecase"
)

type Handler struct {
	selector  *usecase.MatchSelector
	registry  *usecase.ProviderRegistry
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(
	selector *usecase.MatchSelector,
	registry *usecase.ProviderRegistry,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		selector:  selector,
		registry:  registry,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type matchQueryRequest struct {
	ContentType string `validate:"required"`
	ChannelID   string `validate:"omitempty,max=128"`
	Limit       int    `validate:"omitempty,min=1,max=50"`
}

// parseMatchQuery reads the shared query parameters for match endpoints.
// The content type is validated downstream so unknown values surface the
// same invalid-input error as programmatic callers get.
func (h *Handler) parseMatchQuery(ctx context.Context, r *http.Request) (matchQueryRequest, error) {
	req := matchQueryRequest{
		ContentType: strings.TrimSpace(r.URL.Query().Get("type")),
		ChannelID:   strings.TrimSpace(r.URL.Query().Get("channel_id")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return matchQueryRequest{}, fmt.Errorf("%w: limit must be positive integer", usecase.ErrInvalidInput)
		}
		req.Limit = v
	}

	if err := h.validateRequest(ctx, req); err != nil {
		return matchQueryRequest{}, err
	}

	return req, nil
}

func (h *Handler) ListBestMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBestMatches")
	defer span.End()

	query, err := h.parseMatchQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scored, err := h.selector.GetBestMatches(ctx, relevance.Request{
		ContentType: relevance.ContentType(query.ContentType),
		MaxResults:  query.Limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list best matches failed", "content_type", query.ContentType, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoredMatchDTO, 0, len(scored))
	for _, sm := range scored {
		items = append(items, scoredMatchToDTO(ctx, sm))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetBestMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBestMatch")
	defer span.End()

	query, err := h.parseMatchQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contentType, err := relevance.ParseContentType(query.ContentType)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	best, err := h.selector.GetBestMatchForContentType(ctx, contentType, query.ChannelID)
	if err != nil {
		h.logger.WarnContext(ctx, "get best match failed", "content_type", query.ContentType, "error", err)
		writeError(ctx, w, err)
		return
	}
	if best == nil {
		writeError(ctx, w, fmt.Errorf("%w: no qualifying match for %s", usecase.ErrNotFound, contentType))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, *best))
}

func (h *Handler) ListTopMatchesWithDetails(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopMatchesWithDetails")
	defer span.End()

	query, err := h.parseMatchQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contentType, err := relevance.ParseContentType(query.ContentType)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	enriched, err := h.selector.GetTopMatchesWithDetails(ctx, contentType, query.ChannelID, query.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list top matches failed", "content_type", query.ContentType, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]enrichedMatchDTO, 0, len(enriched))
	for _, em := range enriched {
		items = append(items, enrichedMatchToDTO(ctx, em))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCompleteAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompleteAnalysis")
	defer span.End()

	query, err := h.parseMatchQuery(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contentType, err := relevance.ParseContentType(query.ContentType)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	analysis, err := h.selector.GetCompleteAnalysis(ctx, contentType, query.ChannelID)
	if err != nil {
		h.logger.WarnContext(ctx, "get complete analysis failed", "content_type", query.ContentType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, completeAnalysisToDTO(ctx, analysis))
}

func (h *Handler) ListContentTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListContentTypes")
	defer span.End()

	items := make([]string, 0, len(relevance.AllContentTypes))
	for _, ct := range relevance.AllContentTypes {
		items = append(items, string(ct))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSystemHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSystemHealth")
	defer span.End()

	health := h.selector.GetSystemHealth(ctx)
	writeSuccess(ctx, w, http.StatusOK, systemHealthDTO{
		WorkingProviders: health.WorkingProviders,
		TotalProviders:   health.TotalProviders,
		CheckedAt:        health.LastCheckedAt.UTC().Format(timeLayout),
	})
}

func (h *Handler) ListProviderHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListProviderHealth")
	defer span.End()

	snapshot := h.registry.Snapshot()
	items := make([]providerHealthDTO, 0, len(snapshot))
	for _, entry := range snapshot {
		items = append(items, providerHealthToDTO(ctx, entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
