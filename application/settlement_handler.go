package application

import (
	"context"
	"fmt"
	"time"

	"liga/domain/entities"
	"liga/domain/interfaces"
	"liga/domain/services"
	"liga/observability"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SettlementHandler runs settlements, each inside its own unit of work
type SettlementHandler struct {
	uowFactory interfaces.UnitOfWorkFactory
	metrics    *observability.Metrics
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(uowFactory interfaces.UnitOfWorkFactory, metrics *observability.Metrics) *SettlementHandler {
	return &SettlementHandler{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

// SettleMatch settles one match and commits. Nothing is written when it fails.
func (h *SettlementHandler) SettleMatch(ctx context.Context, matchID string, actorUserID *string) (*entities.SettlementResult, error) {
	start := time.Now()
	ctx, span := observability.Tracer().Start(ctx, "settlement.settle_match",
		trace.WithAttributes(attribute.String("match.id", matchID)))
	defer span.End()

	result, err := h.settleMatch(ctx, matchID, actorUserID)
	if err != nil {
		h.metrics.RecordSettlementFailure(time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	h.metrics.RecordSettlement(string(result.Mode), result.Settled, result.TotalPaid, time.Since(start))
	span.SetAttributes(
		attribute.String("settlement.mode", string(result.Mode)),
		attribute.Int("settlement.settled", result.Settled),
		attribute.Int("settlement.credited", result.Credited),
	)
	return result, nil
}

func (h *SettlementHandler) settleMatch(ctx context.Context, matchID string, actorUserID *string) (*entities.SettlementResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settlementService := services.NewSettlementService(
		uow.MatchRepository(),
		uow.PredictionRepository(),
		uow.PayoutConfigRepository(),
		uow.WalletRepository(),
		uow.AuditLogRepository(),
		uow.EventBus(),
	)

	result, err := settlementService.SettleMatch(ctx, matchID, actorUserID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settlement: %w", err)
	}

	return result, nil
}

// SettleUnsettledMatches settles every played match that still has unsettled predictions.
// Failures are logged and counted per match and never stop the pass.
func (h *SettlementHandler) SettleUnsettledMatches(ctx context.Context, limit int) (*entities.SweepResult, error) {
	matches, err := h.listPendingMatches(ctx, limit)
	if err != nil {
		return nil, err
	}

	sweep := &entities.SweepResult{Matches: len(matches)}
	for _, match := range matches {
		if ctx.Err() != nil {
			return sweep, ctx.Err()
		}

		result, err := h.SettleMatch(ctx, match.ID, nil)
		if err != nil {
			log.WithFields(log.Fields{
				"matchID": match.ID,
				"error":   err,
			}).Error("Failed to settle match during sweep")
			sweep.Failures++
			continue
		}
		sweep.Settled += result.Settled
	}

	if sweep.Matches > 0 {
		log.WithFields(log.Fields{
			"matches":  sweep.Matches,
			"settled":  sweep.Settled,
			"failures": sweep.Failures,
		}).Info("Completed settlement sweep")
	}

	return sweep, nil
}

func (h *SettlementHandler) listPendingMatches(ctx context.Context, limit int) ([]*entities.Match, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Read-only
	defer uow.Rollback()

	matches, err := uow.MatchRepository().ListWithUnsettledPredictions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches with unsettled predictions: %w", err)
	}
	return matches, nil
}
