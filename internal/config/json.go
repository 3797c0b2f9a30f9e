package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/tinashem/dukabook/internal/flagx"
	"github.com/tinashem/dukabook/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds.
type jsonConfig struct {
	DatabasePath  *string         `json:"database_path"`
	SecretsPath   *string         `json:"secrets_path"`
	DeviceKeyPath *string         `json:"device_key_path"`
	RemoteAddr    *string         `json:"remote_addr"`
	SyncBatchSize *int            `json:"sync_batch_size"`
	SyncInterval  *timex.Duration `json:"sync_interval"`
	LogLevel      *string         `json:"log_level"`
}

// parseJSON overlays cfg with values loaded from the JSON file named by the
// -c/-config flags. Absent file means no overlay; read or unmarshal errors
// panic, matching the fail-fast startup contract.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.SecretsPath != nil {
		cfg.SecretsPath = *jc.SecretsPath
	}
	if jc.DeviceKeyPath != nil {
		cfg.DeviceKeyPath = *jc.DeviceKeyPath
	}
	if jc.RemoteAddr != nil {
		cfg.RemoteAddr = *jc.RemoteAddr
	}
	if jc.SyncBatchSize != nil {
		cfg.SyncBatchSize = *jc.SyncBatchSize
	}
	if jc.SyncInterval != nil {
		cfg.SyncInterval = time.Duration(jc.SyncInterval.Duration)
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
