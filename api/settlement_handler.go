package api

import (
	"errors"
	"net/http"

	"liga/domain/entities"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SettleRequest is the body of POST /admin/settle
type SettleRequest struct {
	MatchID     string  `json:"match_id" validate:"required"`
	ActorUserID *string `json:"actor_user_id,omitempty"`
}

// SettleResponse is returned after a settlement commits
type SettleResponse struct {
	OK        bool    `json:"ok"`
	Settled   int     `json:"settled"`
	Credited  int     `json:"credited"`
	TotalPaid float64 `json:"total_paid"`
	Mode      string  `json:"mode"`
}

func (s *Server) handleSettle(c *gin.Context) {
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := s.settlement.SettleMatch(c.Request.Context(), req.MatchID, req.ActorUserID)
	if err != nil {
		// Unknown matches and matches without a result are caller errors on this endpoint
		if errors.Is(err, entities.ErrMatchNotFound) || errors.Is(err, entities.ErrMatchWithoutResult) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.WithFields(log.Fields{
			"matchID": req.MatchID,
			"error":   err,
		}).Error("Settlement failed")
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, SettleResponse{
		OK:        true,
		Settled:   result.Settled,
		Credited:  result.Credited,
		TotalPaid: result.TotalPaid,
		Mode:      string(result.Mode),
	})
}
