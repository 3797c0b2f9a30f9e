// Package config loads runtime configuration for the dukabook client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. DUKABOOK_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path to the local database file
//	-r string   base URL of the sync server
//	-i int      background sync interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "database_path": "dukabook.db",
//	  "remote_addr": "https://sync.example.com",
//	  "sync_interval": "30s"
//	}
package config
