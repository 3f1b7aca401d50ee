// Package marketplaces registers every marketplace adapter.
package marketplaces

// This file centralizes adapter imports for self-registration.
// To add a marketplace, add one import line here.

import (
	_ "github.com/agentstation/stocksync/internal/marketplaces/ozon"
	_ "github.com/agentstation/stocksync/internal/marketplaces/yandex"
)
