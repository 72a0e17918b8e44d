// Package config loads runtime configuration for the langgpt client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional .env file in the working directory or its parent.
//  3. LANGGPT_* environment variables.
//  4. Global command-line flags given before the subcommand.
//
// Supported variables and flags
//
//	LANGGPT_API_URL    -api        backend root URL (default http://localhost:8000)
//	LANGGPT_DATA_DIR   -data-dir   token, API key and language files (default ~/.langgpt)
//	LANGGPT_LOG_FILE   -log-file   log destination, "-" for stderr (default <data-dir>/langgpt.log)
//	LANGGPT_LOG_LEVEL  -log-level  debug, info, warn or error
//	LANGGPT_TIMEOUT    -timeout    per-request timeout, e.g. "30s"
//	LANGGPT_TOKEN                  seeds the stored bearer token at startup
package config
