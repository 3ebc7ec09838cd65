package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/noteforge/joplin-sync-go/internal/model"
)

// ErrSyncConfigNotExists means no remote has been configured yet — the
// caller should run `login` before `sync`.
var ErrSyncConfigNotExists = errors.New("config: no sync target configured")

// SyncTargetConfig is the sum type spec.md §6 describes: the only variant
// this core implements is JoplinServer, but the shape is kept so a future
// variant (e.g. a different file-sync backend) needs no schema migration.
type SyncTargetConfig struct {
	Type         string `json:"type"`
	JoplinServer *JoplinServerConfig `json:"joplinServer,omitempty"`
}

// JoplinServerConfig holds the credentials needed to open a
// joplinserver.Client.
type JoplinServerConfig struct {
	Host     string `json:"host"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

const syncTargetTypeJoplinServer = "joplinServer"

// NewJoplinServerConfig wraps host/email/password credentials in the sum
// type's JoplinServer variant.
func NewJoplinServerConfig(host, email, password string) SyncTargetConfig {
	return SyncTargetConfig{
		Type: syncTargetTypeJoplinServer,
		JoplinServer: &JoplinServerConfig{
			Host:     host,
			Email:    email,
			Password: password,
		},
	}
}

// Store is the narrow slice of *store.Store this package depends on,
// avoiding an import cycle with internal/store's own tests.
type Store interface {
	GetSetting(ctx context.Context, key string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
}

// LoadSyncTarget reads the persisted sync target from st, the way
// Setting.FILE_API_SYNC_CONFIG does in the original implementation.
func LoadSyncTarget(ctx context.Context, st Store) (SyncTargetConfig, error) {
	raw, err := st.GetSetting(ctx, model.SettingSyncConfig)
	if err != nil {
		return SyncTargetConfig{}, err
	}

	if raw == "" {
		return SyncTargetConfig{}, ErrSyncConfigNotExists
	}

	var cfg SyncTargetConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return SyncTargetConfig{}, fmt.Errorf("config: parsing sync target: %w", err)
	}

	return cfg, nil
}

// SaveSyncTarget persists cfg to st as JSON, the form `login` writes after
// a successful session exchange.
func SaveSyncTarget(ctx context.Context, st Store, cfg SyncTargetConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encoding sync target: %w", err)
	}

	return st.PutSetting(ctx, model.SettingSyncConfig, string(raw))
}
