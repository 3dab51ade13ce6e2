// Package config loads runtime configuration for the election console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-g string   host:port of the backend gRPC health endpoint ("" disables it)
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds)
//	-d string   path to the local SQLite database
//	-o          work offline against local storage only
//	-u string   actor recorded in audit entries
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds. Keys that are absent leave the default in place:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080/api",
//	  "health_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "database_path": "ballotkeeper.db",
//	  "offline": false,
//	  "actor_id": "Admin",
//	  "log_level": "info"
//	}
package config
