// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package clock supplies the current instant to the engine so that lifecycle
// evaluation is deterministic under test.
package clock

import "time"

// Clock yields the current instant.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock in UTC.
type Real struct{}

func (Real) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant. Test use only.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time { return f.Instant }
