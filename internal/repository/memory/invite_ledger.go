package memory

import (
	"context"
	"sync"
	"time"

	"grouppass/internal/domain"
)

// entry is a ledger slot. A reserved entry has no record yet; a committed
// entry carries the issued link.
type entry struct {
	record   *domain.InviteRecord
	reserved bool
}

// InviteLedger is a process-lifetime, mutex-guarded implementation of
// domain.InviteLedger. Committed records are evicted once they outlive the
// invite TTL, since the platform has expired the link by then and the cached
// copy is useless.
type InviteLedger struct {
	mu      sync.RWMutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewInviteLedger creates a ledger whose records expire ttl after issuance.
// A non-positive ttl disables eviction.
func NewInviteLedger(ttl time.Duration) *InviteLedger {
	return &InviteLedger{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (l *InviteLedger) Get(ctx context.Context, paymentID string) (*domain.InviteRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[paymentID]
	if !ok || e.record == nil || l.expired(e.record) {
		return nil, domain.ErrNotFound
	}
	return e.record, nil
}

func (l *InviteLedger) Reserve(ctx context.Context, paymentID string) (*domain.InviteRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep()
	if e, ok := l.entries[paymentID]; ok {
		if e.record != nil {
			return e.record, nil
		}
		if e.reserved {
			return nil, domain.ErrAlreadyReserved
		}
	}
	l.entries[paymentID] = &entry{reserved: true}
	return nil, nil
}

func (l *InviteLedger) Commit(ctx context.Context, paymentID, link string) (*domain.InviteRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[paymentID]
	if !ok || !e.reserved {
		return nil, domain.ErrNotFound
	}
	// Keep the first committed link if a commit already happened; last write
	// must not replace a link a client may have been handed.
	if e.record != nil {
		return e.record, nil
	}
	e.record = &domain.InviteRecord{
		PaymentID: paymentID,
		Link:      link,
		CreatedAt: l.now(),
	}
	return e.record, nil
}

func (l *InviteLedger) Release(ctx context.Context, paymentID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.entries[paymentID]; ok && e.record == nil {
		delete(l.entries, paymentID)
	}
}

// sweep removes expired records. Called under l.mu on the write path; the map
// stays small at payment-event volume so a full scan is fine.
func (l *InviteLedger) sweep() {
	if l.ttl <= 0 {
		return
	}
	for id, e := range l.entries {
		if e.record != nil && l.expired(e.record) {
			delete(l.entries, id)
		}
	}
}

func (l *InviteLedger) expired(rec *domain.InviteRecord) bool {
	return l.ttl > 0 && l.now().Sub(rec.CreatedAt) > l.ttl
}
