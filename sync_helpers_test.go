package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noteforge/joplin-sync-go/internal/config"
)

func TestNewNetworkClient_SumsTimeouts(t *testing.T) {
	httpClient, err := newNetworkClient(config.NetworkConfig{
		ConnectTimeout: "10s",
		DataTimeout:    "1m",
	})
	require.NoError(t, err)
	assert.Equal(t, 70*time.Second, httpClient.Timeout)
}

func TestNewNetworkClient_RejectsBadDuration(t *testing.T) {
	_, err := newNetworkClient(config.NetworkConfig{ConnectTimeout: "soon", DataTimeout: "60s"})
	assert.Error(t, err)
}

func TestClientID_GeneratesAndPersists(t *testing.T) {
	st := openTestStoreForCLI(t)
	ctx := context.Background()

	first, err := clientID(ctx, st)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := clientID(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
