// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for tests: in-memory database
// setup, poll and user fixtures, and HTTP request/response assertions.
package testutil
