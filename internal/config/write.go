package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFilePermissions = 0o644
	configDirPermissions  = 0o755
)

// configTemplate is the content written on first run. Every option is
// present, commented out, so a user can discover it without reading docs.
const configTemplate = `# joplin-sync-go configuration

[sync]
# poll_interval = "5m"
# conflict_history = 20
# tombstone_max_age = "720h"
# lock_timeout = "3m"

[logging]
# log_level = "info"
# log_file = ""
# log_format = "auto"

[network]
# connect_timeout = "10s"
# data_timeout = "60s"
# user_agent = ""
`

// CreateDefault writes configTemplate to path if nothing exists there yet.
// The write is atomic (temp file + rename) and parent directories are
// created as needed.
func CreateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return atomicWriteFile(path, []byte(configTemplate))
}

func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, configDirPermissions); err != nil {
		return fmt.Errorf("config: creating directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("config: creating temp file: %w", err)
	}

	tempPath := f.Name()

	succeeded := false
	defer func() {
		if !succeeded {
			os.Remove(tempPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()

		return fmt.Errorf("config: writing temp file: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()

		return fmt.Errorf("config: syncing temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("config: closing temp file: %w", err)
	}

	if err := os.Chmod(tempPath, configFilePermissions); err != nil {
		return fmt.Errorf("config: setting file permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("config: renaming temp file: %w", err)
	}

	succeeded = true

	return nil
}
