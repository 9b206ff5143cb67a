package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Activity errors
	ErrUnknownActivity = errors.New("unknown activity")

	// Questioning errors
	ErrDayComplete       = errors.New("all questions complete for today")
	ErrNoPendingQuestion = errors.New("no question is pending")
	ErrBonusAlreadyGiven = errors.New("bonus already given for this day")
	ErrSessionHalted     = errors.New("session halted after backend failure")

	// Wire errors
	ErrInvalidDate = errors.New("invalid date, want YYYY-MM-DD")
	ErrInvalidSlot = errors.New("invalid slot label, want HH:MM")
)
