package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/noteforge/joplin-sync-go/internal/config"
	"github.com/noteforge/joplin-sync-go/internal/filedriver"
	"github.com/noteforge/joplin-sync-go/internal/filedriver/joplinserver"
	"github.com/noteforge/joplin-sync-go/internal/model"
	"github.com/noteforge/joplin-sync-go/internal/store"
	"github.com/noteforge/joplin-sync-go/internal/sync"
)

// openStore opens the local SQLite store at the configured data directory.
func openStore(ctx context.Context, logger *slog.Logger) (*store.Store, error) {
	return store.Open(ctx, config.DefaultDatabasePath(), logger)
}

// openDriver builds the remote filedriver.Driver from the persisted sync
// target, logging in against Joplin Server.
func openDriver(ctx context.Context, st *store.Store, netCfg config.NetworkConfig, logger *slog.Logger) (filedriver.Driver, error) {
	target, err := config.LoadSyncTarget(ctx, st)
	if err != nil {
		return nil, err
	}

	if target.JoplinServer == nil {
		return nil, fmt.Errorf("sync: configured target has no joplinServer section")
	}

	httpClient, err := newNetworkClient(netCfg)
	if err != nil {
		return nil, err
	}

	client := joplinserver.NewClient(joplinserver.Config{
		Host:     target.JoplinServer.Host,
		Email:    target.JoplinServer.Email,
		Password: target.JoplinServer.Password,
	}, httpClient, logger, "joplin-sync-go/"+version)

	if err := client.Login(ctx); err != nil {
		return nil, fmt.Errorf("logging in to joplin server: %w", err)
	}

	return client, nil
}

func newNetworkClient(netCfg config.NetworkConfig) (*http.Client, error) {
	connectTimeout, err := time.ParseDuration(netCfg.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing connect_timeout: %w", err)
	}

	dataTimeout, err := time.ParseDuration(netCfg.DataTimeout)
	if err != nil {
		return nil, fmt.Errorf("parsing data_timeout: %w", err)
	}

	return &http.Client{
		Timeout: connectTimeout + dataTimeout,
	}, nil
}

// clientID returns this installation's persisted client_id, generating and
// storing a fresh one on first use (the 32-char hex id the lock handler
// identifies this client by).
func clientID(ctx context.Context, st *store.Store) (string, error) {
	existing, err := st.GetSetting(ctx, "client_id")
	if err != nil {
		return "", err
	}

	if existing != "" {
		return existing, nil
	}

	fresh := model.NewID().String()
	if err := st.PutSetting(ctx, "client_id", fresh); err != nil {
		return "", err
	}

	return fresh, nil
}

// newEngine builds a sync.Engine from a resolved store, driver, and config.
func newEngine(st *store.Store, drv filedriver.Driver, cid string, logger *slog.Logger) (*sync.Engine, error) {
	return sync.NewEngine(sync.EngineConfig{
		Store:    st,
		Driver:   drv,
		ClientID: cid,
		Target:   1,
		Logger:   logger,
	})
}
