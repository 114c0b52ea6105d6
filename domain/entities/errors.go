package entities

import "errors"

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchWithoutResult = errors.New("match has no recorded result")
	ErrZoneNotFound       = errors.New("zone not found")
	ErrInvalidScore       = errors.New("scores must be non-negative")
	ErrUnknownPayoutMode  = errors.New("unknown payout mode")
	ErrTeamNotInZone      = errors.New("team does not belong to zone")
	ErrInvalidManualOrder = errors.New("manual order cannot be negative")
	ErrCategoryMismatch   = errors.New("category does not match zone")
)
