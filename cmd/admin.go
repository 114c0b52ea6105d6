package cmd

import (
	"context"
	"fmt"

	"liga/application"
	"liga/config"
	"liga/database"
	"liga/infrastructure"
	"liga/observability"

	log "github.com/sirupsen/logrus"
)

// withAdminRuntime opens a database connection for a one-shot command.
// Events are not published from the command line.
func withAdminRuntime(ctx context.Context, fn func(*infrastructure.UnitOfWorkFactoryWrapper) error) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(infrastructure.NewUnitOfWorkFactoryWrapper(db, infrastructure.NewNoopEventPublisher()))
}

// Settle settles one match from the command line
func Settle(ctx context.Context, matchID string, actorUserID *string) error {
	return withAdminRuntime(ctx, func(uowFactory *infrastructure.UnitOfWorkFactoryWrapper) error {
		handler := application.NewSettlementHandler(uowFactory, observability.Default())
		result, err := handler.SettleMatch(ctx, matchID, actorUserID)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"matchID":   result.MatchID,
			"mode":      result.Mode,
			"settled":   result.Settled,
			"credited":  result.Credited,
			"totalPaid": result.TotalPaid,
		}).Info("Settlement complete")
		return nil
	})
}

// RecomputeStandings rebuilds one zone table from the command line
func RecomputeStandings(ctx context.Context, zoneID string) error {
	return withAdminRuntime(ctx, func(uowFactory *infrastructure.UnitOfWorkFactoryWrapper) error {
		standings, err := application.NewStandingsHandler(uowFactory).RecomputeZone(ctx, zoneID)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"zoneID": zoneID,
			"teams":  len(standings),
		}).Info("Standings recomputed")
		return nil
	})
}
