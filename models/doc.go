// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types and typed errors for the poll engine.

# Domain Types

The poll aggregate and its owned substructures:

  - Poll: question, ordered choices, lifecycle instants, protection mode
  - Choice: ballot entry with an append-only vote sequence
  - Vote: immutable record of one admitted selection
  - User: identity record (owned by the auth layer)

A Poll together with its Choices and Votes is always read and written as one
unit; Choices and Votes are never independently addressable.

# Protection Modes

Exactly one duplicate-vote protection mode applies per poll:

	ProtectionNone       every attempt admitted
	ProtectionCookie     voted-poll set carried by the client
	ProtectionIPAddress  one vote per network address
	ProtectionLogin      one vote per authenticated user

# Cast Outcomes

A vote-cast attempt terminates in exactly one outcome:

	OutcomeSuccess, OutcomePollClosed, OutcomeSelectionLimitExceeded,
	OutcomeAlreadyVoted, OutcomeLoginRequired

Policy rejections are returned as CastResult values, never as errors. The
integrity faults ErrPollNotFound, ErrChoiceNotFound and InvalidPollError are
the only error-class failures.
*/
package models
