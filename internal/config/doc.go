// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional YAML file. Settings are grouped
// by concern (server, storage, database, auth) and validated with struct
// tags before the application starts.
package config
