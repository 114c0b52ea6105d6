package api

import (
	"context"
	"net/http"

	"liga/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// SettlementRunner settles the predictions of a match
type SettlementRunner interface {
	SettleMatch(ctx context.Context, matchID string, actorUserID *string) (*entities.SettlementResult, error)
}

// StandingsManager serves zone tables and match results
type StandingsManager interface {
	RecomputeZone(ctx context.Context, zoneID string) ([]*entities.Standing, error)
	GetZoneTable(ctx context.Context, zoneID string) ([]*entities.RankedStanding, error)
	SetManualOrder(ctx context.Context, zoneID, categoryID, teamID string, order int) error
	RecordMatchResult(ctx context.Context, matchID string, homeScore, awayScore int) (*entities.Match, []*entities.Standing, error)
}

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheckers fails on the first unhealthy dependency
type HealthCheckers []HealthChecker

// Health checks every dependency in order
func (h HealthCheckers) Health(ctx context.Context) error {
	for _, checker := range h {
		if err := checker.Health(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Server holds the HTTP handlers of the service
type Server struct {
	settlement     SettlementRunner
	standings      StandingsManager
	health         HealthChecker
	metricsHandler http.Handler
	adminToken     string
	validate       *validator.Validate
}

// NewServer creates a new HTTP server. An empty admin token leaves /admin open.
func NewServer(
	settlement SettlementRunner,
	standings StandingsManager,
	health HealthChecker,
	metricsHandler http.Handler,
	adminToken string,
) *Server {
	return &Server{
		settlement:     settlement,
		standings:      standings,
		health:         health,
		metricsHandler: metricsHandler,
		adminToken:     adminToken,
		validate:       newValidator(),
	}
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), otelgin.Middleware("liga"), requestLogger())

	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "method not allowed"})
	})
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	router.GET("/health", s.handleHealth)
	if s.metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(s.metricsHandler))
	}

	router.GET("/zones/:id/standings", s.handleGetStandings)

	admin := router.Group("/admin", adminAuth(s.adminToken))
	admin.POST("/settle", s.handleSettle)
	admin.POST("/zones/:id/standings/recompute", s.handleRecomputeStandings)
	admin.PUT("/zones/:id/standings/overrides", s.handleSetOverride)
	admin.POST("/matches/:id/result", s.handleRecordResult)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.health.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
