package entities

import (
	"fmt"
	"time"
)

// PayoutModeKind is the stored discriminator of a payout configuration
type PayoutModeKind string

const (
	PayoutModeKindPoints PayoutModeKind = "points"
	PayoutModeKindPool   PayoutModeKind = "pool"
)

// Defaults used when no active payout configuration exists
const (
	DefaultPointsForResult = 3
	DefaultPointsForExact  = 5
	DefaultFeePercent      = 10.0
)

// PayoutMode is one of PointsMode or PoolMode
type PayoutMode interface {
	Kind() PayoutModeKind
	isPayoutMode()
}

// PointsMode awards points for a correct outcome plus a bonus for an exact score
type PointsMode struct {
	PointsForResult int
	PointsForExact  int
}

func (PointsMode) Kind() PayoutModeKind { return PayoutModeKindPoints }
func (PointsMode) isPayoutMode()        {}

// PoolMode splits the staked pool, minus a fee, among the correct predictions
type PoolMode struct {
	FeePercent float64
}

func (PoolMode) Kind() PayoutModeKind { return PayoutModeKindPool }
func (PoolMode) isPayoutMode()        {}

// PayoutConfig is the process-wide payout configuration row
type PayoutConfig struct {
	ID              string         `db:"id"`
	ModeKind        PayoutModeKind `db:"mode"`
	PointsForResult int            `db:"points_for_result"`
	PointsForExact  int            `db:"points_for_exact"`
	FeePercent      float64        `db:"fee_percent"`
	Active          bool           `db:"active"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// DefaultPayoutConfig returns the configuration applied when none is stored
func DefaultPayoutConfig() *PayoutConfig {
	return &PayoutConfig{
		ModeKind:        PayoutModeKindPool,
		PointsForResult: DefaultPointsForResult,
		PointsForExact:  DefaultPointsForExact,
		FeePercent:      DefaultFeePercent,
		Active:          true,
	}
}

// Mode converts the stored row into its tagged variant
func (c *PayoutConfig) Mode() (PayoutMode, error) {
	switch c.ModeKind {
	case PayoutModeKindPoints:
		return PointsMode{PointsForResult: c.PointsForResult, PointsForExact: c.PointsForExact}, nil
	case PayoutModeKindPool:
		return PoolMode{FeePercent: c.FeePercent}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPayoutMode, c.ModeKind)
	}
}
