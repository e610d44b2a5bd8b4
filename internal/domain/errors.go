package domain

import "errors"

// Error taxonomy shared by every operation of the core. Callers classify
// failures with errors.Is; specific context is added by wrapping.
var (
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrValidation          = errors.New("validation error")
	ErrUpstreamFailure     = errors.New("upstream failure")
)

// User-facing conditions that must not surface as generic conflicts.
var (
	ErrRewardAlreadyClaimed = errors.New("reward already claimed")
	ErrUserAlreadyAgent     = errors.New("user already has an agent record")
	ErrAgentCodeCollision   = errors.New("agent code collision")
)
