package entities

// PredictionSettlement is the computed outcome for a single prediction
type PredictionSettlement struct {
	PredictionID  string
	UserID        string
	Stake         float64
	Correct       bool
	Exact         bool
	PointsAwarded int
	PayoutAmount  float64
}

// SettlementBatch holds everything computed for one match before it is persisted
type SettlementBatch struct {
	MatchID       string
	Mode          PayoutMode
	RealOutcome   Outcome
	PoolTotal     float64
	WinnersTotal  float64
	Fee           float64
	Distributable float64
	Rows          []*PredictionSettlement
}

// TotalPayout sums the payout of every row
func (b *SettlementBatch) TotalPayout() float64 {
	total := 0.0
	for _, row := range b.Rows {
		total += row.PayoutAmount
	}
	return total
}

// Credits returns the rows that require a wallet credit
func (b *SettlementBatch) Credits() []*PredictionSettlement {
	if _, ok := b.Mode.(PoolMode); !ok {
		return nil
	}
	var credits []*PredictionSettlement
	for _, row := range b.Rows {
		if row.PayoutAmount > 0 {
			credits = append(credits, row)
		}
	}
	return credits
}

// SettlementResult reports what a settlement run did
type SettlementResult struct {
	MatchID        string
	Mode           PayoutModeKind
	Settled        int
	Credited       int
	SkippedCredits int
	TotalPaid      float64
}

// SweepResult summarizes a pass over every match with pending predictions
type SweepResult struct {
	Matches  int
	Settled  int
	Failures int
}
