package sync

import (
	"sync"

	"github.com/agentstation/stocksync/pkg/marketplace"
)

// Hook function types for run events
type (
	// AccountHook is called when an account finishes, successfully or not
	AccountHook func(account AccountResult)

	// BatchHook is called after every batch, submitted or planned
	BatchHook func(event BatchEvent)
)

// BatchEvent describes one finished batch.
type BatchEvent struct {
	Marketplace marketplace.ID
	Account     string
	Kind        string // "stocks" or "prices"
	Total       int    // Number of batches in the phase
	Batch       BatchResult
}

// hooks manages event callbacks for a Syncer.
type hooks struct {
	mu        sync.RWMutex
	onAccount []AccountHook
	onBatch   []BatchHook
}

// OnAccount registers a callback for finished accounts.
func (h *hooks) OnAccount(fn AccountHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAccount = append(h.onAccount, fn)
}

// OnBatch registers a callback for finished batches.
func (h *hooks) OnBatch(fn BatchHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBatch = append(h.onBatch, fn)
}

func (h *hooks) account(a AccountResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onAccount {
		fn(a)
	}
}

func (h *hooks) batch(e BatchEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onBatch {
		fn(e)
	}
}
