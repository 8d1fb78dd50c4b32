// Package config loads runtime configuration for the matcheat CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend, e.g. http://127.0.0.1:3100
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-f string   session file (SQLite)
//
// # JSON schema
//
//	{
//	  "server_url": "http://127.0.0.1:3100",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "session_file": "matcheat.db"
//	}
package config
