package domain

import (
	"context"
	"fmt"
	"time"
)

// InviteRecord is the issued invite link for a payment, cached for retrieval.
// Records are created once per payment identifier and never mutated. The link
// itself is owned by the messaging platform, which enforces its expiry and
// single-use constraint; the ledger only keeps a local copy of the URL.
// swagger:model InviteRecord
type InviteRecord struct {
	PaymentID string    `json:"payment_id"`
	Link      string    `json:"invite_link"`
	CreatedAt time.Time `json:"created_at"`
}

// InviteLedger defines storage operations for issued invite links. It is the
// only shared mutable state in the system and must be safe for concurrent use
// from multiple request handlers.
//
// Issuance is at most once per payment identifier: callers claim the key with
// Reserve before creating a link, then Commit the result or Release the claim
// on failure. The reserve step is atomic so two concurrent deliveries for the
// same payment cannot both mint a live invite.
type InviteLedger interface {
	// Get returns the committed record for paymentID, or ErrNotFound.
	Get(ctx context.Context, paymentID string) (*InviteRecord, error)

	// Reserve claims paymentID for issuance. It returns the existing record
	// if one is already committed, ErrAlreadyReserved if another caller holds
	// an uncommitted claim, and (nil, nil) when the claim was acquired.
	Reserve(ctx context.Context, paymentID string) (*InviteRecord, error)

	// Commit stores the issued link under a held claim and returns the record.
	Commit(ctx context.Context, paymentID, link string) (*InviteRecord, error)

	// Release drops an uncommitted claim so a later attempt can retry.
	Release(ctx context.Context, paymentID string)
}

// GroupManager defines the messaging-platform operations the system needs:
// minting single-use invite links and lifting bans (infrastructure port).
type GroupManager interface {
	// CreateInviteLink creates a single-use invite link that the platform
	// expires ttl from now.
	CreateInviteLink(ctx context.Context, ttl time.Duration) (string, error)

	// UnbanMember lifts a ban on the given member, succeeding even when the
	// member is not currently banned.
	UnbanMember(ctx context.Context, memberID int64) error
}

// GroupPlatformError is a rejection reported by the messaging platform
// itself, as opposed to a transport failure reaching it. Description carries
// the platform's own wording so it can be surfaced to operators.
type GroupPlatformError struct {
	Code        int
	Description string
}

func (e *GroupPlatformError) Error() string {
	return fmt.Sprintf("group platform error %d: %s", e.Code, e.Description)
}
