package models

import "errors"

// Custom errors
var (
	ErrNotFound         = errors.New("record not found")
	ErrZeroBankroll     = errors.New("initial bankroll is zero, roi is undefined")
	ErrInvalidOdds      = errors.New("odds must be at least 1.0")
	ErrInvalidResult    = errors.New("invalid full-time result code")
	ErrInvalidMarket    = errors.New("invalid market")
	ErrInvalidStakeMode = errors.New("invalid stake mode")
	ErrEmptyLeague      = errors.New("league is required")
)
