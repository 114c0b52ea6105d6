package entities

import (
	"time"
)

// NoPredictedScore stands in for a missing predicted score so it never equals a real one
const NoPredictedScore = -999

// Prediction represents a user's forecast for a single match
type Prediction struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	MatchID            string     `db:"match_id"`
	PredictedOutcome   Outcome    `db:"predicted_outcome"`
	PredictedHomeScore *int       `db:"predicted_home_score"`
	PredictedAwayScore *int       `db:"predicted_away_score"`
	Stake              float64    `db:"stake"`
	Settled            bool       `db:"settled"`
	PointsAwarded      int        `db:"points_awarded"`
	PayoutAmount       float64    `db:"payout_amount"`
	CreatedAt          time.Time  `db:"created_at"`
	SettledAt          *time.Time `db:"settled_at"`
}

// IsCorrect checks the predicted outcome against the real one
func (p *Prediction) IsCorrect(real Outcome) bool {
	return p.PredictedOutcome == real
}

// IsExact checks the predicted score line against the real one
func (p *Prediction) IsExact(homeScore, awayScore int) bool {
	predHome, predAway := NoPredictedScore, NoPredictedScore
	if p.PredictedHomeScore != nil {
		predHome = *p.PredictedHomeScore
	}
	if p.PredictedAwayScore != nil {
		predAway = *p.PredictedAwayScore
	}
	return predHome == homeScore && predAway == awayScore
}
