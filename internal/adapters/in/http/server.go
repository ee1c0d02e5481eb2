package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"courierbot/internal/core/application/usecases/commands"
	"courierbot/internal/core/application/usecases/queries"
	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"
)

// CourierIDHeader carries the verified caller identity, set by the upstream
// auth layer. The service trusts it as-is.
const CourierIDHeader = "X-Courier-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	processMessageHandler commands.ProcessMessageCommandHandler
	updateStatusHandler   commands.UpdateDeliveryStatusCommandHandler

	// Query handlers
	getDeliveriesHandler   queries.GetDeliveriesQueryHandler
	searchKnowledgeHandler queries.SearchKnowledgeQueryHandler
	metricsHandler         queries.GetPerformanceMetricsQueryHandler

	knowledgeCategories ports.KnowledgeRepository
	suggestions         services.SuggestionGenerator
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	processMessageHandler commands.ProcessMessageCommandHandler,
	updateStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	searchKnowledgeHandler queries.SearchKnowledgeQueryHandler,
	metricsHandler queries.GetPerformanceMetricsQueryHandler,
	knowledgeCategories ports.KnowledgeRepository,
) *Server {
	return &Server{
		processMessageHandler:  processMessageHandler,
		updateStatusHandler:    updateStatusHandler,
		getDeliveriesHandler:   getDeliveriesHandler,
		searchKnowledgeHandler: searchKnowledgeHandler,
		metricsHandler:         metricsHandler,
		knowledgeCategories:    knowledgeCategories,
		suggestions:            services.NewSuggestionGenerator(),
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/chat", s.Chat)
	e.GET("/api/deliveries", s.GetDeliveries)
	e.POST("/api/deliveries/update-status", s.UpdateDeliveryStatus)
	e.POST("/api/knowledge/search", s.SearchKnowledge)
	e.GET("/api/knowledge/categories", s.GetKnowledgeCategories)
	e.GET("/api/dashboard/summary", s.GetDashboardSummary)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Chat handles POST /api/chat - answers one courier message.
func (s *Server) Chat(ctx echo.Context) error {
	courierID, err := s.courierID(ctx)
	if err != nil {
		return err
	}

	var req ChatRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	targetStatus := delivery.StatusUnknown
	if req.TargetStatus != "" {
		targetStatus, err = delivery.ParseStatus(req.TargetStatus)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Unknown target status: " + req.TargetStatus,
			})
		}
	}

	cmd, err := commands.NewProcessMessageCommand(courierID, req.Message, req.DeliveryID, targetStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid chat request: " + err.Error(),
		})
	}

	result, err := s.processMessageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Unable to process your request. Please try again or contact support.",
		})
	}

	return ctx.JSON(http.StatusOK, ChatResponse{
		Answer:         result.Answer,
		QueryType:      result.Intent.String(),
		Suggestions:    result.Suggestions,
		AppliedAction:  result.AppliedAction,
		ResponseTimeMS: result.ResponseTimeMS,
	})
}

// GetDeliveries handles GET /api/deliveries - lists the caller's deliveries.
// Optional query parameters: status (wire name), limit.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	courierID, err := s.courierID(ctx)
	if err != nil {
		return err
	}

	statusFilter := delivery.StatusUnknown
	if raw := ctx.QueryParam("status"); raw != "" {
		statusFilter, err = delivery.ParseStatus(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Unknown status: " + raw,
			})
		}
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		if err = echo.QueryParamsBinder(ctx).Int("limit", &limit).BindError(); err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid limit",
			})
		}
	}

	query, err := queries.NewGetDeliveriesQuery(courierID, statusFilter, limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid deliveries query: " + err.Error(),
		})
	}

	deliveries, err := s.getDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve deliveries",
		})
	}

	response := make([]Delivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = Delivery{
			ID:              d.ID.String(),
			TrackingNumber:  d.TrackingNumber,
			Status:          d.Status.String(),
			CustomerName:    d.CustomerName,
			CustomerAddress: d.CustomerAddress,
			CODAmount:       d.CODAmount,
			CreatedAt:       d.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateDeliveryStatus handles POST /api/deliveries/update-status.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	courierID, err := s.courierID(ctx)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	targetStatus, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown status: " + req.Status,
		})
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(courierID, req.TrackingNumber, targetStatus, req.Note)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status update: " + err.Error(),
		})
	}

	updated, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.statusUpdateError(ctx, req, err)
	}

	return ctx.JSON(http.StatusOK, UpdateStatusResponse{
		Message:        "Delivery " + updated.TrackingNumber() + " status updated to " + updated.Status().String(),
		TrackingNumber: updated.TrackingNumber(),
		NewStatus:      updated.Status().String(),
	})
}

// SearchKnowledge handles POST /api/knowledge/search.
func (s *Server) SearchKnowledge(ctx echo.Context) error {
	var req KnowledgeSearchRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	query, err := queries.NewSearchKnowledgeQuery(req.Query, req.Limit)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid knowledge search: " + err.Error(),
		})
	}

	entries, err := s.searchKnowledgeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to search knowledge base",
		})
	}

	response := make([]KnowledgeEntry, len(entries))
	for i, entry := range entries {
		response[i] = KnowledgeEntry{
			ID:        entry.ID.String(),
			Category:  entry.Category,
			Title:     entry.Title,
			Body:      entry.Body,
			UpdatedAt: entry.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetKnowledgeCategories handles GET /api/knowledge/categories.
func (s *Server) GetKnowledgeCategories(ctx echo.Context) error {
	categories, err := s.knowledgeCategories.Categories(ctx.Request().Context())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve categories",
		})
	}

	return ctx.JSON(http.StatusOK, Categories{Categories: categories})
}

// GetDashboardSummary handles GET /api/dashboard/summary.
func (s *Server) GetDashboardSummary(ctx echo.Context) error {
	courierID, err := s.courierID(ctx)
	if err != nil {
		return err
	}

	requestCtx := ctx.Request().Context()

	deliveriesQuery, err := queries.NewGetDeliveriesQuery(courierID, delivery.StatusUnknown, 0)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build summary",
		})
	}

	deliveries, err := s.getDeliveriesHandler.Handle(requestCtx, deliveriesQuery)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve deliveries",
		})
	}

	metricsQuery, err := queries.NewGetPerformanceMetricsQuery(courierID, time.Now().UTC())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build summary",
		})
	}

	metrics, err := s.metricsHandler.Handle(requestCtx, metricsQuery)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute metrics",
		})
	}

	summary := DashboardSummary{
		CompletedToday: metrics.Completed,
		FailedToday:    metrics.Failed,
		SuccessRate:    metrics.SuccessRate,
		EarningsToday:  metrics.TotalEarnings,
		Suggestions:    s.suggestions.Generate(conversation.IntentUnclassified, nil, nil),
	}

	for _, d := range deliveries {
		switch d.Status {
		case delivery.StatusAssigned, delivery.StatusPickedUp:
			summary.ActiveDeliveries++
		case delivery.StatusInTransit:
			summary.InTransit++
		}
	}

	return ctx.JSON(http.StatusOK, summary)
}

// courierID extracts the caller identity from the X-Courier-ID header.
func (s *Server) courierID(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(CourierIDHeader)
	if raw == "" {
		if err := ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing " + CourierIDHeader + " header",
		}); err != nil {
			return kernel.UUID{}, err
		}
		return kernel.UUID{}, echo.ErrUnauthorized
	}

	courierID, err := kernel.UUIDFromString(raw)
	if err != nil {
		if err = ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Invalid " + CourierIDHeader + " header",
		}); err != nil {
			return kernel.UUID{}, err
		}
		return kernel.UUID{}, echo.ErrUnauthorized
	}

	return courierID, nil
}

// statusUpdateError maps command rejections onto HTTP codes. Foreign
// deliveries produce the same 404 as missing ones.
func (s *Server) statusUpdateError(ctx echo.Context, req UpdateStatusRequest, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Delivery " + req.TrackingNumber + " not found",
		})

	case errors.Is(err, delivery.ErrStatusUnchanged):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Delivery " + req.TrackingNumber + " already has status " + req.Status,
		})

	case errors.Is(err, delivery.ErrIllegalTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Delivery " + req.TrackingNumber + " cannot move to " + req.Status,
		})

	case errors.Is(err, ports.ErrStaleDelivery):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Delivery " + req.TrackingNumber + " was modified concurrently, retry",
		})

	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to update delivery status",
		})
	}
}
