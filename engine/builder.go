// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ballotbox/ballotbox/clock"
	"github.com/ballotbox/ballotbox/models"
)

const (
	maxQuestionLen = 512
	maxChoiceLen   = 256
)

// Builder constructs and persists new polls from creation requests whose
// time windows are relative offsets in seconds.
type Builder struct {
	polls PollStore
	users UserStore
	clk   clock.Clock
}

func NewBuilder(polls PollStore, users UserStore, clk clock.Clock) *Builder {
	return &Builder{polls: polls, users: users, clk: clk}
}

// BuildPoll resolves the input's relative offsets against a single request
// instant, validates the result and persists it. creatorID may be empty for
// anonymous creation; when set, the new poll is also appended to that user's
// created-polls list as a best-effort second write.
func (b *Builder) BuildPoll(ctx context.Context, input models.PollInput, creatorID string) (*models.Poll, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// One capture of the clock: every offset resolves against the same
	// instant.
	requestTime := b.clk.Now()

	poll := &models.Poll{
		ID:                 uuid.NewString(),
		Question:           input.Question,
		CreatedAt:          requestTime,
		CreatedBy:          creatorID,
		VotingStart:        requestTime,
		ResultsAvailableAt: requestTime,
		ProtectionMode:     input.ProtectionMode,
		SelectionLimit:     input.SelectionLimit,
	}
	// Zero means the caller left the limit unset; single choice is the
	// default.
	if poll.SelectionLimit == 0 {
		poll.SelectionLimit = 1
	}

	if input.VotingStartIn != nil {
		poll.VotingStart = requestTime.Add(time.Duration(*input.VotingStartIn) * time.Second)
	}
	if input.VotingEndIn != nil {
		end := requestTime.Add(time.Duration(*input.VotingEndIn) * time.Second)
		poll.VotingEnd = &end
	}
	if input.ResultsAvailableIn != nil {
		poll.ResultsAvailableAt = requestTime.Add(time.Duration(*input.ResultsAvailableIn) * time.Second)
	}

	if poll.VotingEnd != nil && poll.VotingEnd.Before(poll.VotingStart) {
		return nil, &models.InvalidPollError{Field: "ordering", Reason: "voting end cannot be before voting start"}
	}
	// Historical behavior: a results instant before creation is corrected
	// silently, not rejected.
	if poll.ResultsAvailableAt.Before(poll.CreatedAt) {
		poll.ResultsAvailableAt = poll.CreatedAt
	}

	for _, text := range input.ChoiceTexts {
		poll.Choices = append(poll.Choices, models.Choice{
			ID:   uuid.NewString(),
			Text: text,
		})
	}

	if err := b.polls.Save(ctx, poll); err != nil {
		return nil, err
	}

	if creatorID != "" {
		// Second write against a different aggregate. If it fails the poll
		// still exists with a creator the user record does not reverse-link.
		if err := b.users.AppendCreatedPoll(ctx, creatorID, poll.ID); err != nil {
			slog.Warn("failed to link poll to creator", "error", err, "poll_id", poll.ID, "user_id", creatorID)
		}
	}

	return poll, nil
}

func validateInput(input models.PollInput) error {
	if input.Question == "" || len(input.Question) > maxQuestionLen {
		return &models.InvalidPollError{Field: "question", Reason: "question must be 1-512 characters"}
	}
	if len(input.ChoiceTexts) < 2 {
		return &models.InvalidPollError{Field: "choices", Reason: "poll must have at least 2 choices"}
	}
	for _, text := range input.ChoiceTexts {
		if text == "" || len(text) > maxChoiceLen {
			return &models.InvalidPollError{Field: "choices", Reason: "choice text must be 1-256 characters"}
		}
	}
	if !input.ProtectionMode.Valid() {
		return &models.InvalidPollError{Field: "protection_mode", Reason: "unknown protection mode"}
	}
	if input.SelectionLimit < 0 {
		return &models.InvalidPollError{Field: "selection_limit", Reason: "selection limit cannot be negative"}
	}
	return nil
}
