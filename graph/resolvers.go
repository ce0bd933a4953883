// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package graph

import (
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/ballotbox/ballotbox/clock"
	"github.com/ballotbox/ballotbox/engine"
	"github.com/ballotbox/ballotbox/models"
)

// Enum mapping between the schema and the domain constants.

func modeToEnum(m models.ProtectionMode) string {
	switch m {
	case models.ProtectionCookie:
		return "COOKIE"
	case models.ProtectionIPAddress:
		return "IP_ADDRESS"
	case models.ProtectionLogin:
		return "LOGIN"
	default:
		return "NONE"
	}
}

func modeFromEnum(s string) models.ProtectionMode {
	switch s {
	case "COOKIE":
		return models.ProtectionCookie
	case "IP_ADDRESS":
		return models.ProtectionIPAddress
	case "LOGIN":
		return models.ProtectionLogin
	case "NONE":
		return models.ProtectionNone
	}
	return models.ProtectionMode(s)
}

func outcomeToEnum(o models.CastOutcome) string {
	switch o {
	case models.OutcomeSuccess:
		return "SUCCESS"
	case models.OutcomePollClosed:
		return "POLL_CLOSED"
	case models.OutcomeSelectionLimitExceeded:
		return "SELECTION_LIMIT_EXCEEDED"
	case models.OutcomeAlreadyVoted:
		return "ALREADY_VOTED"
	default:
		return "LOGIN_REQUIRED"
	}
}

// PollResolver resolves a Poll. Tally fields are gated on result
// visibility, evaluated freshly against the clock on every read.
type PollResolver struct {
	p   *models.Poll
	clk clock.Clock
}

func (r *PollResolver) ID() graphql.ID     { return graphql.ID(r.p.ID) }
func (r *PollResolver) Question() string   { return r.p.Question }
func (r *PollResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.p.CreatedAt}
}
func (r *PollResolver) VotingStart() graphql.Time {
	return graphql.Time{Time: r.p.VotingStart}
}

func (r *PollResolver) VotingEnd() *graphql.Time {
	if r.p.VotingEnd == nil {
		return nil
	}
	return &graphql.Time{Time: *r.p.VotingEnd}
}

func (r *PollResolver) ResultsAvailableAt() graphql.Time {
	return graphql.Time{Time: r.p.ResultsAvailableAt}
}

func (r *PollResolver) ProtectionMode() string { return modeToEnum(r.p.ProtectionMode) }
func (r *PollResolver) SelectionLimit() int32  { return int32(r.p.SelectionLimit) }

func (r *PollResolver) VotingOpen() bool {
	return engine.VotingOpen(r.p, r.clk.Now())
}

func (r *PollResolver) ResultsAvailable() bool {
	return engine.ResultsVisible(r.p, r.clk.Now())
}

// VoteCount is null until results become available. The tally is stored
// either way; only the read is gated.
func (r *PollResolver) VoteCount() *int32 {
	if !engine.ResultsVisible(r.p, r.clk.Now()) {
		return nil
	}
	n := int32(r.p.VoteCount())
	return &n
}

func (r *PollResolver) Choices() []*ChoiceResolver {
	resolvers := make([]*ChoiceResolver, len(r.p.Choices))
	for i := range r.p.Choices {
		resolvers[i] = &ChoiceResolver{p: r.p, c: &r.p.Choices[i], clk: r.clk}
	}
	return resolvers
}

// ChoiceResolver resolves a Choice. The choice holds no back-pointer to its
// poll; the poll is carried alongside for visibility gating.
type ChoiceResolver struct {
	p   *models.Poll
	c   *models.Choice
	clk clock.Clock
}

func (r *ChoiceResolver) ID() graphql.ID { return graphql.ID(r.c.ID) }
func (r *ChoiceResolver) Text() string   { return r.c.Text }

func (r *ChoiceResolver) VoteCount() *int32 {
	if !engine.ResultsVisible(r.p, r.clk.Now()) {
		return nil
	}
	n := int32(len(r.c.Votes))
	return &n
}

func (r *ChoiceResolver) Votes() *[]*VoteResolver {
	if !engine.ResultsVisible(r.p, r.clk.Now()) {
		return nil
	}
	resolvers := make([]*VoteResolver, len(r.c.Votes))
	for i := range r.c.Votes {
		resolvers[i] = &VoteResolver{v: &r.c.Votes[i]}
	}
	return &resolvers
}

// VoteResolver exposes only the public facts of a vote. The recorded IP
// address and user reference stay server side.
type VoteResolver struct {
	v *models.Vote
}

func (r *VoteResolver) ID() graphql.ID { return graphql.ID(r.v.ID) }
func (r *VoteResolver) CastAt() graphql.Time {
	return graphql.Time{Time: r.v.CastAt}
}

// UserResolver resolves a User.
type UserResolver struct {
	u *models.User
}

func (r *UserResolver) ID() graphql.ID   { return graphql.ID(r.u.ID) }
func (r *UserResolver) Username() string { return r.u.Username }
func (r *UserResolver) JoinedAt() graphql.Time {
	return graphql.Time{Time: r.u.JoinedAt}
}

func (r *UserResolver) CreatedPolls() []graphql.ID {
	ids := make([]graphql.ID, len(r.u.CreatedPolls))
	for i, id := range r.u.CreatedPolls {
		ids[i] = graphql.ID(id)
	}
	return ids
}

// CastVotePayloadResolver resolves the result of a castVote mutation.
type CastVotePayloadResolver struct {
	result models.CastResult
}

func (r *CastVotePayloadResolver) Outcome() string {
	return outcomeToEnum(r.result.Outcome)
}

func (r *CastVotePayloadResolver) Votes() *[]*VoteResolver {
	if r.result.Outcome != models.OutcomeSuccess {
		return nil
	}
	resolvers := make([]*VoteResolver, len(r.result.Votes))
	for i := range r.result.Votes {
		resolvers[i] = &VoteResolver{v: &r.result.Votes[i]}
	}
	return &resolvers
}

// AuthPayloadResolver resolves a successful register or login.
type AuthPayloadResolver struct {
	user  *models.User
	token string
}

func (r *AuthPayloadResolver) User() *UserResolver { return &UserResolver{u: r.user} }
func (r *AuthPayloadResolver) Token() string       { return r.token }
