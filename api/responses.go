package api

import (
	"errors"
	"net/http"

	"liga/domain/entities"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// StandingResponse is one row of a zone table
type StandingResponse struct {
	Position       int    `json:"position"`
	TeamID         string `json:"team_id"`
	TeamName       string `json:"team_name"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	ManualOrder    int    `json:"manual_order,omitempty"`
}

func toStandingResponse(position, manualOrder int, s *entities.Standing) StandingResponse {
	return StandingResponse{
		Position:       position,
		TeamID:         s.TeamID,
		TeamName:       s.TeamName,
		Played:         s.Played,
		Won:            s.Won,
		Drawn:          s.Drawn,
		Lost:           s.Lost,
		GoalsFor:       s.GoalsFor,
		GoalsAgainst:   s.GoalsAgainst,
		GoalDifference: s.GoalDifference(),
		Points:         s.Points,
		ManualOrder:    manualOrder,
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"ok": false, "error": message})
}

// respondDomainError maps domain errors to status codes, anything unknown is a 500
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entities.ErrZoneNotFound), errors.Is(err, entities.ErrMatchNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidScore),
		errors.Is(err, entities.ErrTeamNotInZone),
		errors.Is(err, entities.ErrInvalidManualOrder),
		errors.Is(err, entities.ErrCategoryMismatch):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.WithFields(log.Fields{
			"path":  c.FullPath(),
			"error": err,
		}).Error("Request failed")
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
