package marketplace_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stocksync/pkg/config"
	"github.com/agentstation/stocksync/pkg/marketplace"
	"github.com/agentstation/stocksync/pkg/marketplace/marketplacetest"
)

func TestRegistryBuild(t *testing.T) {
	const first, second marketplace.ID = "test-a", "test-b"
	marketplace.Register(first, func(*config.Config) ([]marketplace.Marketplace, error) {
		return []marketplace.Marketplace{marketplacetest.New(first, "a1", 10), marketplacetest.New(first, "a2", 10)}, nil
	})
	marketplace.Register(second, func(*config.Config) ([]marketplace.Marketplace, error) {
		return nil, errors.New("not configured")
	})

	assert.Contains(t, marketplace.Registered(), first)

	accounts, err := marketplace.Build(config.Default(), first)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "a1", accounts[0].Account())
	assert.Equal(t, "a2", accounts[1].Account())

	_, err = marketplace.Build(config.Default(), second)
	assert.ErrorContains(t, err, "building test-b accounts")

	_, err = marketplace.Build(config.Default(), "missing")
	assert.ErrorContains(t, err, "no adapter registered")
}
