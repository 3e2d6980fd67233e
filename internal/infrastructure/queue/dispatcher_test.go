package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/consumershield/claims-core/internal/core/domain"
	"github.com/consumershield/claims-core/internal/core/ports"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []*domain.AuditLogEntry
	err     error
	done    chan struct{}
}

func (r *recordingAudit) Insert(_ context.Context, entry *domain.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	if r.done != nil {
		r.done <- struct{}{}
	}
	return nil
}

func (r *recordingAudit) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (n *recordingNotifier) StatusChanged(_ context.Context, _ string, _ domain.ClaimStatus, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.err
}

type recordingCache struct {
	mu     sync.Mutex
	scopes []string
	done   chan struct{}
}

func (c *recordingCache) Get(_ context.Context, _ string) ([]byte, bool) { return nil, false }

func (c *recordingCache) Set(_ context.Context, _ string, _ []byte) error { return nil }

func (c *recordingCache) Invalidate(_ context.Context, scopes ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes = append(c.scopes, scopes...)
	if c.done != nil {
		c.done <- struct{}{}
	}
	return nil
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for side effect")
	}
}

func TestDispatcher_ProcessesFullJob(t *testing.T) {
	audit := &recordingAudit{done: make(chan struct{}, 1)}
	notifier := &recordingNotifier{}
	cache := &recordingCache{done: make(chan struct{}, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, audit, notifier, cache, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.SideEffectJob{
		ClaimID:  "claim_1",
		TenantID: "t1",
		Audit:    &domain.AuditLogEntry{Action: domain.ActionClaimStatusUpdated, EntityID: "claim_1"},
		Notify: &ports.StatusNotification{
			ClaimID:         "claim_1",
			NewStatus:       domain.StatusVerification,
			RecipientUserID: "member_1",
		},
		InvalidateScopes: []string{"claims:list:t1:queue"},
	})

	waitFor(t, audit.done)
	waitFor(t, cache.done)

	if audit.count() != 1 {
		t.Errorf("expected 1 audit entry, got %d", audit.count())
	}
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if len(cache.scopes) != 1 || cache.scopes[0] != "claims:list:t1:queue" {
		t.Errorf("unexpected invalidated scopes: %v", cache.scopes)
	}
}

func TestDispatcher_NotifierFailureDoesNotStopAudit(t *testing.T) {
	audit := &recordingAudit{done: make(chan struct{}, 1)}
	notifier := &recordingNotifier{err: errors.New("broker unavailable")}
	cache := &recordingCache{done: make(chan struct{}, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(1, audit, notifier, cache, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.SideEffectJob{
		ClaimID:          "claim_1",
		TenantID:         "t1",
		Audit:            &domain.AuditLogEntry{Action: domain.ActionClaimStatusUpdated, EntityID: "claim_1"},
		Notify:           &ports.StatusNotification{ClaimID: "claim_1", NewStatus: domain.StatusResolved, RecipientUserID: "member_1"},
		InvalidateScopes: []string{"claims:list:t1:queue"},
	})

	waitFor(t, audit.done)
	waitFor(t, cache.done)

	if audit.count() != 1 {
		t.Errorf("audit insert must survive a failed notification, got %d entries", audit.count())
	}
}

func TestDispatcher_AuditFailureDoesNotStopInvalidation(t *testing.T) {
	audit := &recordingAudit{err: errors.New("write concern error")}
	notifier := &recordingNotifier{}
	cache := &recordingCache{done: make(chan struct{}, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(1, audit, notifier, cache, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(ports.SideEffectJob{
		ClaimID:          "claim_1",
		TenantID:         "t1",
		Audit:            &domain.AuditLogEntry{Action: domain.ActionClaimCreated, EntityID: "claim_1"},
		InvalidateScopes: []string{"claims:list:t1:claimant:member_1"},
	})

	waitFor(t, cache.done)
}

func TestDispatcher_ShardingIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingAudit{}, &recordingNotifier{}, &recordingCache{}, zerolog.Nop())

	first := d.shardIndex("claim_42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("claim_42"); got != first {
			t.Fatalf("shard index changed between calls: %d vs %d", first, got)
		}
	}
	if first < 0 || first >= 4 {
		t.Fatalf("shard index out of range: %d", first)
	}
}
