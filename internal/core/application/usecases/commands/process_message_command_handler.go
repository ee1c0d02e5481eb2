package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"courierbot/internal/core/domain/model/conversation"
	"courierbot/internal/core/domain/model/delivery"
	"courierbot/internal/core/domain/model/kernel"
	"courierbot/internal/core/domain/services"
	"courierbot/internal/core/ports"
	"courierbot/internal/pkg/errs"
)

// ProcessMessageResult is the outcome of one answered turn.
type ProcessMessageResult struct {
	Answer         string
	Intent         conversation.Intent
	Suggestions    []string
	AppliedAction  string
	FellBack       bool
	ResponseTimeMS int64
}

// ProcessMessageCommandHandler runs the conversational pipeline for one
// courier message: classify, retrieve, apply a status change when one was
// requested, answer, suggest follow-ups, and log the turn.
//
// Turns for the same courier are serialized through the context store's
// per-courier lock; turns for different couriers run concurrently.
//
// Gateway failures and empty retrieval results degrade to deterministic
// answers, and a failed conversation log write is logged and swallowed. An
// unreachable knowledge or delivery store is different: it fails the turn,
// because an ungrounded answer would be presented as authoritative.
type ProcessMessageCommandHandler struct {
	uowFactory     UoWFactory
	contexts       ports.ContextStore
	statusHandler  UpdateDeliveryStatusCommandHandler
	router         services.IntentRouter
	synthesizer    services.ResponseSynthesizer
	suggestions    services.SuggestionGenerator
	knowledgeLimit int
	logger         *slog.Logger
}

// NewProcessMessageCommandHandler creates the pipeline handler.
// knowledgeLimit values below one fall back to the retrieval default.
func NewProcessMessageCommandHandler(
	uowFactory UoWFactory,
	contexts ports.ContextStore,
	statusHandler UpdateDeliveryStatusCommandHandler,
	router services.IntentRouter,
	synthesizer services.ResponseSynthesizer,
	suggestionGenerator services.SuggestionGenerator,
	knowledgeLimit int,
	logger *slog.Logger,
) ProcessMessageCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return ProcessMessageCommandHandler{
		uowFactory:     uowFactory,
		contexts:       contexts,
		statusHandler:  statusHandler,
		router:         router,
		synthesizer:    synthesizer,
		suggestions:    suggestionGenerator,
		knowledgeLimit: knowledgeLimit,
		logger:         logger.With("component", "process_message"),
	}
}

// Handle processes one courier message. It fails only on an invalid command
// or an unreachable store; every other failure mode still answers the turn.
func (h *ProcessMessageCommandHandler) Handle(ctx context.Context,
	cmd ProcessMessageCommand) (ProcessMessageResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessMessageResult{}, err
	}

	started := time.Now()

	unlock := h.contexts.Lock(cmd.CourierID())
	defer unlock()

	convCtx := h.contexts.Get(cmd.CourierID())
	intent := h.router.Classify(cmd.Message(), convCtx)

	uow := h.uowFactory.Create()

	var (
		answer         string
		fellBack       bool
		appliedAction  string
		actionDelivery *delivery.Delivery
	)

	action, hasAction := h.resolveAction(cmd, intent)
	if hasAction {
		actionDelivery, answer, appliedAction = h.applyAction(ctx, cmd.CourierID(), action)
	} else {
		composer := services.NewRetrievalComposer(
			uow.KnowledgeRepository(), uow.DeliveryRepository(), h.knowledgeLimit)

		bundle, err := composer.Compose(ctx, cmd.CourierID(), cmd.Message(), intent)
		if err != nil {
			// An unreachable store fails the turn. Answering without the
			// records it would have grounded on could present stale or
			// invented facts as authoritative.
			h.logger.ErrorContext(ctx, "retrieval store unavailable",
				"intent", intent.String(), "error", err)
			return ProcessMessageResult{}, fmt.Errorf("retrieve grounding: %w", err)
		}

		answer, fellBack = h.synthesizer.Synthesize(ctx, cmd.Message(), intent, bundle, convCtx)
	}

	suggestions := h.suggestions.Generate(intent, actionDelivery, convCtx)

	h.recordTurn(convCtx, cmd.Message(), answer, intent, action, hasAction, suggestions)

	elapsed := time.Since(started).Milliseconds()
	h.persistLog(ctx, uow, cmd, answer, intent, appliedAction, fellBack, elapsed)

	return ProcessMessageResult{
		Answer:         answer,
		Intent:         intent,
		Suggestions:    suggestions,
		AppliedAction:  appliedAction,
		FellBack:       fellBack,
		ResponseTimeMS: elapsed,
	}, nil
}

// resolveAction decides whether the turn carries a status change: an explicit
// structured request from the caller wins, otherwise a status_update message
// is scanned for a phrased command.
func (h *ProcessMessageCommandHandler) resolveAction(cmd ProcessMessageCommand,
	intent conversation.Intent) (services.ActionRequest, bool) {
	if cmd.HasExplicitAction() {
		return services.ActionRequest{
			TrackingNumber: cmd.RequestedTracking(),
			TargetStatus:   cmd.RequestedStatus(),
		}, true
	}

	if intent != conversation.IntentStatusUpdate {
		return services.ActionRequest{}, false
	}

	return services.ParseActionRequest(cmd.Message())
}

// applyAction runs the status change and turns its outcome, success or typed
// rejection, into the courier-facing answer. Rejections never leak whether a
// foreign delivery exists.
func (h *ProcessMessageCommandHandler) applyAction(ctx context.Context, courierID kernel.UUID,
	action services.ActionRequest) (*delivery.Delivery, string, string) {
	statusCmd, err := NewUpdateDeliveryStatusCommand(courierID, action.TrackingNumber,
		action.TargetStatus, "")
	if err != nil {
		return nil, fmt.Sprintf("I can't apply that change: %s.", err), ""
	}

	updated, err := h.statusHandler.Handle(ctx, statusCmd)
	switch {
	case err == nil:
		applied := fmt.Sprintf("%s: %s", updated.TrackingNumber(), updated.Status())
		return updated, fmt.Sprintf("Done. %s is now %s.",
			updated.TrackingNumber(), updated.Status()), applied

	case errors.Is(err, errs.ErrObjectNotFound):
		return nil, fmt.Sprintf("I couldn't find delivery %s among your deliveries.",
			action.TrackingNumber), ""

	case errors.Is(err, delivery.ErrStatusUnchanged):
		return nil, fmt.Sprintf("%s is already %s, nothing to change.",
			action.TrackingNumber, action.TargetStatus), ""

	case errors.Is(err, delivery.ErrIllegalTransition):
		return nil, fmt.Sprintf("%s can't move to %s from its current status.",
			action.TrackingNumber, action.TargetStatus), ""

	case errors.Is(err, ports.ErrStaleDelivery):
		return nil, fmt.Sprintf("%s just changed on another device. Check its current status and retry.",
			action.TrackingNumber), ""

	default:
		h.logger.ErrorContext(ctx, "status change failed",
			"trackingNumber", action.TrackingNumber, "error", err)
		return nil, "Something went wrong applying that change. Please try again.", ""
	}
}

// recordTurn appends both sides of the exchange to the conversation context
// and refreshes the cross-turn state.
func (h *ProcessMessageCommandHandler) recordTurn(convCtx *conversation.Context,
	message, answer string, intent conversation.Intent,
	action services.ActionRequest, hasAction bool, suggestions []string) {
	now := time.Now().UTC()

	if turn, err := conversation.NewTurn(conversation.RoleCourier, message, now); err == nil {
		convCtx.Append(turn)
	}
	if turn, err := conversation.NewTurn(conversation.RoleAssistant, answer, now); err == nil {
		convCtx.Append(turn)
	}

	convCtx.SetLastIntent(intent)
	if hasAction {
		convCtx.SetLastDeliveryRef(action.TrackingNumber)
	}
	convCtx.SetLastSuggestions(suggestions)
}

// persistLog writes the turn to the conversation log. Failures are logged,
// never surfaced: the courier already has their answer.
func (h *ProcessMessageCommandHandler) persistLog(ctx context.Context, uow UoW,
	cmd ProcessMessageCommand, answer string, intent conversation.Intent,
	appliedAction string, fellBack bool, elapsed int64) {
	record, err := conversation.NewLogRecord(kernel.NewUUID(), cmd.CourierID(),
		cmd.Message(), answer, intent, appliedAction, fellBack, elapsed)
	if err != nil {
		h.logger.WarnContext(ctx, "conversation log record invalid", "error", err)
		return
	}

	if err := uow.ConversationRepository().Add(ctx, record); err != nil {
		h.logger.WarnContext(ctx, "conversation log write failed", "error", err)
	}
}
