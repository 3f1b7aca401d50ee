package marketplace

import (
	"fmt"
	"slices"
	"sync"

	"github.com/agentstation/stocksync/pkg/config"
)

// Factory builds the accounts of one marketplace from configuration.
// It returns no accounts when the marketplace is not configured.
type Factory func(cfg *config.Config) ([]Marketplace, error)

var (
	mu        sync.RWMutex
	factories = make(map[ID]Factory)
)

// Register registers the factory for a marketplace ID.
// This is called by adapter packages in their init() functions.
func Register(id ID, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[id] = factory
}

// Registered returns the registered marketplace IDs in sorted order.
func Registered() []ID {
	mu.RLock()
	defer mu.RUnlock()

	ids := make([]ID, 0, len(factories))
	for id := range factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Build creates the accounts of the given marketplaces, or of every
// registered marketplace when ids is empty. Accounts are returned in the
// order of ids, then in configuration order.
func Build(cfg *config.Config, ids ...ID) ([]Marketplace, error) {
	if len(ids) == 0 {
		ids = Registered()
	}

	var out []Marketplace
	for _, id := range ids {
		mu.RLock()
		factory, ok := factories[id]
		mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("no adapter registered for marketplace: %s", id)
		}

		accounts, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("building %s accounts: %w", id, err)
		}
		out = append(out, accounts...)
	}
	return out, nil
}
