// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/google/uuid"

	"github.com/ballotbox/ballotbox/auth"
	"github.com/ballotbox/ballotbox/clock"
	"github.com/ballotbox/ballotbox/db"
	"github.com/ballotbox/ballotbox/engine"
	"github.com/ballotbox/ballotbox/metrics"
	"github.com/ballotbox/ballotbox/middleware"
	"github.com/ballotbox/ballotbox/models"
)

// castRetries bounds the re-runs of a cast attempt after stale writes. Each
// re-run starts the whole sequence over so the dedup check sees fresh state.
const castRetries = 5

var errInvalidCredentials = errors.New("invalid username or password")

// Resolver is the root GraphQL resolver.
type Resolver struct {
	builder   *engine.Builder
	caster    *engine.Caster
	polls     engine.PollStore
	users     *db.UserStore
	clk       clock.Clock
	collector *metrics.Collector
	secret    string
}

func NewResolver(builder *engine.Builder, caster *engine.Caster, polls engine.PollStore, users *db.UserStore, clk clock.Clock, collector *metrics.Collector, sessionSecret string) *Resolver {
	return &Resolver{
		builder:   builder,
		caster:    caster,
		polls:     polls,
		users:     users,
		clk:       clk,
		collector: collector,
		secret:    sessionSecret,
	}
}

// Polls resolves the polls query.
func (r *Resolver) Polls(ctx context.Context) ([]*PollResolver, error) {
	polls, err := r.polls.List(ctx)
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		return nil, err
	}

	resolvers := make([]*PollResolver, len(polls))
	for i, p := range polls {
		resolvers[i] = &PollResolver{p: p, clk: r.clk}
	}
	return resolvers, nil
}

// Poll resolves a single poll by ID; null for an unknown ID.
func (r *Resolver) Poll(ctx context.Context, args struct{ ID graphql.ID }) (*PollResolver, error) {
	p, err := r.polls.Load(ctx, string(args.ID))
	if errors.Is(err, models.ErrPollNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.Error("failed to load poll", "error", err, "poll_id", string(args.ID))
		return nil, err
	}
	return &PollResolver{p: p, clk: r.clk}, nil
}

// Me resolves the currently authenticated user, or null.
func (r *Resolver) Me(ctx context.Context) (*UserResolver, error) {
	reqCtx := middleware.VoterFromContext(ctx)
	if reqCtx.UserID == "" {
		return nil, nil
	}

	u, err := r.users.GetByID(ctx, reqCtx.UserID)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		slog.Error("failed to load session user", "error", err, "user_id", reqCtx.UserID)
		return nil, err
	}
	return &UserResolver{u: u}, nil
}

type pollInputArgs struct {
	Question           string
	Choices            []string
	VotingStartIn      *int32
	VotingEndIn        *int32
	ResultsAvailableIn *int32
	ProtectionMode     string
	SelectionLimit     *int32
}

// CreatePoll resolves the createPoll mutation.
func (r *Resolver) CreatePoll(ctx context.Context, args struct{ Input pollInputArgs }) (*PollResolver, error) {
	input := models.PollInput{
		Question:       args.Input.Question,
		ChoiceTexts:    args.Input.Choices,
		ProtectionMode: modeFromEnum(args.Input.ProtectionMode),
	}
	if args.Input.VotingStartIn != nil {
		v := int64(*args.Input.VotingStartIn)
		input.VotingStartIn = &v
	}
	if args.Input.VotingEndIn != nil {
		v := int64(*args.Input.VotingEndIn)
		input.VotingEndIn = &v
	}
	if args.Input.ResultsAvailableIn != nil {
		v := int64(*args.Input.ResultsAvailableIn)
		input.ResultsAvailableIn = &v
	}
	if args.Input.SelectionLimit != nil {
		input.SelectionLimit = int(*args.Input.SelectionLimit)
	}

	creatorID := middleware.VoterFromContext(ctx).UserID

	poll, err := r.builder.BuildPoll(ctx, input, creatorID)
	if err != nil {
		if ipe, ok := models.AsInvalidPoll(err); ok {
			return nil, ipe
		}
		slog.Error("failed to create poll", "error", err)
		return nil, err
	}

	slog.Info("poll created", "poll_id", poll.ID, "protection_mode", string(poll.ProtectionMode))
	r.collector.RecordPollCreated()

	return &PollResolver{p: poll, clk: r.clk}, nil
}

// CastVote resolves the castVote mutation. Stale writes re-run the whole
// attempt; policy rejections come back in the payload, not as errors.
func (r *Resolver) CastVote(ctx context.Context, args struct {
	PollID    graphql.ID
	ChoiceIDs []graphql.ID
}) (*CastVotePayloadResolver, error) {
	reqCtx := middleware.VoterFromContext(ctx)

	choiceIDs := make([]string, len(args.ChoiceIDs))
	for i, id := range args.ChoiceIDs {
		choiceIDs[i] = string(id)
	}

	var result models.CastResult
	var err error
	for attempt := 0; attempt < castRetries; attempt++ {
		result, err = r.caster.CastVote(ctx, string(args.PollID), choiceIDs, reqCtx)
		if !errors.Is(err, db.ErrVersionConflict) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, models.ErrPollNotFound) || errors.Is(err, models.ErrChoiceNotFound) {
			return nil, err
		}
		slog.Error("failed to cast vote", "error", err, "poll_id", string(args.PollID))
		return nil, err
	}

	r.collector.RecordCastOutcome(string(result.Outcome))

	if result.Outcome == models.OutcomeSuccess && result.VotedPolls != nil {
		middleware.SetPendingCookie(ctx, &http.Cookie{
			Name:     middleware.VotedPollsCookie,
			Value:    middleware.VotedPollsValue(result.VotedPolls),
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
		})
	}

	slog.Info("vote cast attempt", "poll_id", string(args.PollID), "outcome", string(result.Outcome))

	return &CastVotePayloadResolver{result: result}, nil
}

// Register resolves the register mutation and opens a session.
func (r *Resolver) Register(ctx context.Context, args struct{ Username, Password string }) (*AuthPayloadResolver, error) {
	if len(args.Username) < 2 || len(args.Username) > 32 {
		return nil, fmt.Errorf("username must be 2-32 characters")
	}
	if len(args.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(args.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     args.Username,
		PasswordHash: hash,
		JoinedAt:     r.clk.Now(),
		CreatedPolls: []string{},
	}
	if err := r.users.Create(ctx, u); err != nil {
		if errors.Is(err, db.ErrUsernameTaken) {
			return nil, err
		}
		slog.Error("failed to create user", "error", err)
		return nil, err
	}

	slog.Info("user registered", "user_id", u.ID, "username", u.Username)

	return r.openSession(ctx, u)
}

// Login resolves the login mutation.
func (r *Resolver) Login(ctx context.Context, args struct{ Username, Password string }) (*AuthPayloadResolver, error) {
	u, err := r.users.GetByUsername(ctx, args.Username)
	if errors.Is(err, db.ErrUserNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		slog.Error("failed to load user for login", "error", err)
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, args.Password) {
		return nil, errInvalidCredentials
	}

	slog.Info("user logged in", "user_id", u.ID)

	return r.openSession(ctx, u)
}

func (r *Resolver) openSession(ctx context.Context, u *models.User) (*AuthPayloadResolver, error) {
	token, err := auth.NewSessionToken(u.ID, r.secret)
	if err != nil {
		slog.Error("failed to issue session token", "error", err, "user_id", u.ID)
		return nil, err
	}

	middleware.SetPendingCookie(ctx, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
	})

	return &AuthPayloadResolver{user: u, token: token}, nil
}
