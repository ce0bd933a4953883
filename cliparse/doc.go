// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

# Precedence

CLI flags win over environment variables:

	-p / PORT                       server port (default 8087)
	-d / DATABASE_URL               database connection string (required)
	-t / DATABASE_TYPE              "sqlite" or "postgres" (default sqlite)
	-session-secret / SESSION_SECRET  session JWT signing secret (required)

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
*/
package cliparse
