package domain

import "errors"

// Sentinel errors shared across services and adapters. Controllers map these
// onto HTTP statuses; adapters wrap platform failures around them so callers
// can branch with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPayload means the webhook body could not be parsed under the
	// provider's signing scheme.
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrInvalidSignature means the computed signature does not match the
	// header under the configured secret.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInviteCreation means the messaging platform rejected or failed the
	// invite link creation call.
	ErrInviteCreation = errors.New("invite link creation failed")

	// ErrAlreadyReserved means another request holds the issuance claim for
	// the same payment identifier.
	ErrAlreadyReserved = errors.New("issuance already in progress")
)
