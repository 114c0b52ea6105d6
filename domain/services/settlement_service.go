package services

import (
	"context"
	"fmt"
	"time"

	"liga/config"
	"liga/domain/entities"
	"liga/domain/events"
	"liga/domain/interfaces"
	"liga/domain/utils"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	config           *config.Config
	matchRepo        interfaces.MatchRepository
	predictionRepo   interfaces.PredictionRepository
	payoutConfigRepo interfaces.PayoutConfigRepository
	walletRepo       interfaces.WalletRepository
	auditLogRepo     interfaces.AuditLogRepository
	eventPublisher   interfaces.EventPublisher
	calculator       *SettlementCalculator
	now              func() time.Time
}

// NewSettlementService creates a new settlement service.
// All repositories are expected to share the caller's transaction.
func NewSettlementService(
	matchRepo interfaces.MatchRepository,
	predictionRepo interfaces.PredictionRepository,
	payoutConfigRepo interfaces.PayoutConfigRepository,
	walletRepo interfaces.WalletRepository,
	auditLogRepo interfaces.AuditLogRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.SettlementService {
	return &settlementService{
		config:           config.Get(),
		matchRepo:        matchRepo,
		predictionRepo:   predictionRepo,
		payoutConfigRepo: payoutConfigRepo,
		walletRepo:       walletRepo,
		auditLogRepo:     auditLogRepo,
		eventPublisher:   eventPublisher,
		calculator:       NewSettlementCalculator(),
		now:              time.Now,
	}
}

// SettleMatch settles every unsettled prediction of a played match.
// Calling it again for the same match settles nothing and credits nothing.
func (s *settlementService) SettleMatch(ctx context.Context, matchID string, actorUserID *string) (*entities.SettlementResult, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrMatchNotFound, matchID)
	}
	if !match.HasResult() {
		return nil, fmt.Errorf("%w: %s", entities.ErrMatchWithoutResult, matchID)
	}

	payoutConfig, err := s.activePayoutConfig(ctx)
	if err != nil {
		return nil, err
	}
	mode, err := payoutConfig.Mode()
	if err != nil {
		return nil, err
	}

	result := &entities.SettlementResult{
		MatchID: matchID,
		Mode:    mode.Kind(),
	}

	predictions, err := s.predictionRepo.LockUnsettledByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unsettled predictions: %w", err)
	}
	if len(predictions) == 0 {
		log.WithField("matchID", matchID).Debug("No unsettled predictions for match")
		return result, nil
	}

	batch, err := s.calculator.CalculateSettlement(match, mode, predictions)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate settlement: %w", err)
	}

	settledIDs, err := s.predictionRepo.ApplySettlementBatch(ctx, batch, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to apply settlement batch: %w", err)
	}
	result.Settled = len(settledIDs)

	settledNow := make(map[string]bool, len(settledIDs))
	for _, id := range settledIDs {
		settledNow[id] = true
	}

	totalPaid := decimal.Zero
	for _, row := range batch.Credits() {
		if !settledNow[row.PredictionID] {
			continue
		}

		credited, err := utils.CreditWallet(ctx, s.walletRepo, s.eventPublisher, &entities.WalletTransaction{
			UserID:         row.UserID,
			Amount:         row.PayoutAmount,
			Reason:         entities.WalletReasonPayout,
			IdempotencyKey: entities.PayoutIdempotencyKey(row.PredictionID),
			Metadata: map[string]any{
				"match_id":      matchID,
				"prediction_id": row.PredictionID,
				"stake":         row.Stake,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to credit payout for prediction %s: %w", row.PredictionID, err)
		}
		if !credited {
			result.SkippedCredits++
			continue
		}
		result.Credited++
		totalPaid = totalPaid.Add(decimal.NewFromFloat(row.PayoutAmount))
	}
	result.TotalPaid = totalPaid.Round(2).InexactFloat64()

	if err := s.appendAuditEntry(ctx, actorUserID, payoutConfig.FeePercent, batch, result); err != nil {
		return nil, err
	}

	if err := s.eventPublisher.Publish(events.MatchSettledEvent{
		MatchID:     matchID,
		Mode:        string(result.Mode),
		Settled:     result.Settled,
		Credited:    result.Credited,
		TotalPaid:   result.TotalPaid,
		ActorUserID: actorUserID,
	}); err != nil {
		log.WithError(err).Error("Failed to publish match settled event")
	}

	log.WithFields(log.Fields{
		"matchID":        matchID,
		"mode":           result.Mode,
		"settled":        result.Settled,
		"credited":       result.Credited,
		"skippedCredits": result.SkippedCredits,
		"totalPaid":      result.TotalPaid,
		"poolTotal":      batch.PoolTotal,
		"distributable":  batch.Distributable,
	}).Info("Settled match")

	if skipped := len(predictions) - result.Settled; skipped > 0 {
		log.WithFields(log.Fields{
			"matchID": matchID,
			"skipped": skipped,
		}).Warn("Some predictions were settled concurrently and left untouched")
	}

	return result, nil
}

// activePayoutConfig returns the stored configuration or the configured defaults
func (s *settlementService) activePayoutConfig(ctx context.Context) (*entities.PayoutConfig, error) {
	payoutConfig, err := s.payoutConfigRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get payout config: %w", err)
	}
	if payoutConfig != nil {
		return payoutConfig, nil
	}

	defaults := entities.DefaultPayoutConfig()
	if s.config != nil {
		defaults.ModeKind = entities.PayoutModeKind(s.config.DefaultPayoutMode)
		defaults.PointsForResult = s.config.DefaultPointsForResult
		defaults.PointsForExact = s.config.DefaultPointsForExact
		defaults.FeePercent = s.config.DefaultFeePercent
	}
	return defaults, nil
}

func (s *settlementService) appendAuditEntry(
	ctx context.Context,
	actorUserID *string,
	feePercent float64,
	batch *entities.SettlementBatch,
	result *entities.SettlementResult,
) error {
	details := map[string]any{
		"match_id":    batch.MatchID,
		"mode":        string(result.Mode),
		"fee_percent": feePercent,
		"pool_total":  batch.PoolTotal,
		"settled":     result.Settled,
	}
	if _, ok := batch.Mode.(entities.PoolMode); ok {
		details["total_paid"] = result.TotalPaid
	}

	entry := &entities.AuditLogEntry{
		ActorUserID: actorUserID,
		Action:      entities.AuditActionSettle,
		Details:     details,
	}
	if err := s.auditLogRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit log entry: %w", err)
	}
	return nil
}
