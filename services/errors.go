package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	// Not-found lookups.
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Validation and business rules.
	ErrValidationFailed     = errors.New("validation failed")
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrInvalidFormat        = errors.New("invalid tournament format")
	ErrRegistrationNotOpen  = errors.New("tournament registration is not open")
	ErrTournamentFull       = errors.New("tournament registration is full")
	ErrNotEnoughTeams       = errors.New("not enough teams registered to start")
	ErrTournamentNotActive  = errors.New("tournament is not active")
	ErrMatchAlreadySettled  = errors.New("match result has already been recorded")
	ErrWinnerNotInMatch     = errors.New("winner is not a participant of this match")
	ErrDrawNotAllowed       = errors.New("draw results are not allowed for this match")
	ErrWinnerRequired       = errors.New("a winner is required for a decisive result")
	ErrRoundNotComplete     = errors.New("current round still has pending matches")
	ErrTournamentNotOver    = errors.New("tournament has not finished yet")
	ErrArchiveUploadSkipped = errors.New("archive storage is not configured")

	// Conflicts.
	ErrTeamAlreadyRegistered = errors.New("team id is already registered for this tournament")

	// Lifecycle.
	ErrInvalidStatusTransition = errors.New("invalid tournament status transition")
)
