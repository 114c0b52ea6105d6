package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OverrideRequest is the body of PUT /admin/zones/:id/standings/overrides
type OverrideRequest struct {
	CategoryID  string `json:"category_id"`
	TeamID      string `json:"team_id" validate:"required"`
	ManualOrder *int   `json:"manual_order" validate:"required,min=0"`
}

// RecordResultRequest is the body of POST /admin/matches/:id/result
type RecordResultRequest struct {
	HomeScore *int `json:"home_score" validate:"required,min=0"`
	AwayScore *int `json:"away_score" validate:"required,min=0"`
}

func (s *Server) handleGetStandings(c *gin.Context) {
	table, err := s.standings.GetZoneTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	rows := make([]StandingResponse, 0, len(table))
	for _, ranked := range table {
		rows = append(rows, toStandingResponse(ranked.Position, ranked.ManualOrder, ranked.Standing))
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "zone_id": c.Param("id"), "standings": rows})
}

func (s *Server) handleRecomputeStandings(c *gin.Context) {
	standings, err := s.standings.RecomputeZone(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "teams": len(standings)})
}

func (s *Server) handleSetOverride(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	if err := s.standings.SetManualOrder(c.Request.Context(), c.Param("id"), req.CategoryID, req.TeamID, *req.ManualOrder); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) handleRecordResult(c *gin.Context) {
	var req RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	match, standings, err := s.standings.RecordMatchResult(c.Request.Context(), c.Param("id"), *req.HomeScore, *req.AwayScore)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"match_id":   match.ID,
		"zone_id":    match.ZoneID,
		"home_score": *match.HomeScore,
		"away_score": *match.AwayScore,
		"teams":      len(standings),
	})
}
