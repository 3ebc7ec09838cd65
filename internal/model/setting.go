package model

// Setting is a single key/value row in the local settings table. Settings
// are local-only; they never travel over the wire to the remote.
type Setting struct {
	Key   string
	Value string
}

// Well-known setting keys used by this core.
const (
	SettingClientID          = "client_id"
	SettingSyncConfig        = "file_api.sync_config"
	SettingSyncTargetInfo    = "sync.target_info"
	SettingDeltaCursor       = "sync.delta_cursor"
	SettingLastSyncTime      = "sync.last_sync_time"
)
