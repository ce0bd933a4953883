// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/ballotbox/ballotbox/clock"
	"github.com/ballotbox/ballotbox/models"
)

// PollStore is the persistence contract the engine requires. Save must be
// atomic per poll and reject stale writes so that concurrent cast attempts
// against the same poll cannot both be admitted past the ledger.
type PollStore interface {
	Load(ctx context.Context, pollID string) (*models.Poll, error)
	Save(ctx context.Context, p *models.Poll) error
	List(ctx context.Context) ([]*models.Poll, error)
}

// UserStore is the secondary aggregate the builder writes a creator
// back-reference into.
type UserStore interface {
	AppendCreatedPoll(ctx context.Context, userID, pollID string) error
}

// Caster runs a single vote-cast attempt against one poll.
type Caster struct {
	polls PollStore
	clk   clock.Clock
}

func NewCaster(polls PollStore, clk clock.Clock) *Caster {
	return &Caster{polls: polls, clk: clk}
}

// CastVote executes one attempt of the cast sequence. Each step short
// circuits: the first failing check is the outcome. Policy rejections come
// back as the result's Outcome; unknown poll or choice IDs and storage
// failures come back as errors. On a stale write the store's conflict error
// is returned unchanged and the caller must re-run the whole attempt, since
// the dedup state may have changed underneath it.
func (c *Caster) CastVote(ctx context.Context, pollID string, choiceIDs []string, req models.RequestContext) (models.CastResult, error) {
	poll, err := c.polls.Load(ctx, pollID)
	if err != nil {
		return models.CastResult{}, err
	}

	chosen := make([]*models.Choice, 0, len(choiceIDs))
	for _, id := range choiceIDs {
		ch := poll.FindChoice(id)
		if ch == nil {
			return models.CastResult{}, models.ErrChoiceNotFound
		}
		chosen = append(chosen, ch)
	}

	now := c.clk.Now()
	if !VotingOpen(poll, now) {
		return models.CastResult{Outcome: models.OutcomePollClosed}, nil
	}

	// Repeated choice IDs are not collapsed: each occurrence counts toward
	// the limit.
	if len(choiceIDs) > poll.SelectionLimit {
		return models.CastResult{Outcome: models.OutcomeSelectionLimitExceeded}, nil
	}

	fp, ok := Fingerprint(poll, req)
	if !ok && poll.ProtectionMode == models.ProtectionLogin {
		return models.CastResult{Outcome: models.OutcomeLoginRequired}, nil
	}
	if ok && HasVoted(poll, fp, req.VotedPolls) {
		return models.CastResult{Outcome: models.OutcomeAlreadyVoted}, nil
	}

	votes := make([]models.Vote, 0, len(chosen))
	for _, ch := range chosen {
		v := models.Vote{
			ID:        uuid.NewString(),
			CastAt:    now,
			IPAddress: req.IPAddress,
			UserID:    req.UserID,
		}
		ch.Votes = append(ch.Votes, v)
		votes = append(votes, v)
	}

	if err := c.polls.Save(ctx, poll); err != nil {
		return models.CastResult{}, err
	}

	result := models.CastResult{
		Outcome: models.OutcomeSuccess,
		Votes:   votes,
	}
	if poll.ProtectionMode == models.ProtectionCookie {
		result.VotedPolls = RecordVote(poll, fp, req.VotedPolls)
	}
	return result, nil
}
