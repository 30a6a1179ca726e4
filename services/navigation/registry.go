// File: services/navigation/registry.go
package navigation

import (
	"context"
	"sync"
	"time"

	"carepro/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry tracks one controller per flow. A flow is one SPA instance; its ID
// travels inside the signed flow token. Controllers carry only transient state
// (screen, user, OTP context), so recreating one for a returning flow is safe:
// the next bootstrap recomputes everything from the session store.
type Registry struct {
	mu      sync.Mutex
	flows   map[string]*flowEntry
	store   session.Store
	revoker Revoker
	logger  *zap.Logger
}

type flowEntry struct {
	ctrl     *Controller
	lastSeen time.Time
}

// NewRegistry creates an empty flow registry.
func NewRegistry(store session.Store, revoker Revoker, logger *zap.Logger) *Registry {
	return &Registry{
		flows:   make(map[string]*flowEntry),
		store:   store,
		revoker: revoker,
		logger:  logger,
	}
}

// NewFlow mints a fresh flow ID with its controller.
func (r *Registry) NewFlow() (string, *Controller) {
	flowID := uuid.New().String()
	return flowID, r.Get(flowID)
}

// Get returns the controller for a flow, creating one if needed.
func (r *Registry) Get(flowID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.flows[flowID]
	if !ok {
		entry = &flowEntry{ctrl: NewController(flowID, r.store, r.revoker, r.logger)}
		r.flows[flowID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.ctrl
}

// Prune drops controllers idle for longer than maxIdle and reports how many
// were removed. Dropping a controller does not touch the session store.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for id, entry := range r.flows {
		if entry.lastSeen.Before(cutoff) {
			delete(r.flows, id)
			removed++
		}
	}
	return removed
}

// StartPruning prunes idle flows on an interval until the context is done.
func (r *Registry) StartPruning(ctx context.Context, interval, maxIdle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Prune(maxIdle); n > 0 {
					r.logger.Debug("pruned idle navigation flows", zap.Int("count", n))
				}
			}
		}
	}()
}
