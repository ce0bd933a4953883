package models

import "time"

// Duplicate-vote protection modes. Exactly one mode applies per poll.
const (
	ProtectionNone      = ProtectionMode("none")
	ProtectionCookie    = ProtectionMode("cookie")
	ProtectionIPAddress = ProtectionMode("ip_address")
	ProtectionLogin     = ProtectionMode("login")
)

// ProtectionMode controls how duplicate votes are detected for a poll.
type ProtectionMode string

// Valid reports whether m is one of the four known modes.
func (m ProtectionMode) Valid() bool {
	switch m {
	case ProtectionNone, ProtectionCookie, ProtectionIPAddress, ProtectionLogin:
		return true
	}
	return false
}

// Cast outcomes. Policy rejections are values, never errors.
const (
	OutcomeSuccess                = CastOutcome("success")
	OutcomePollClosed             = CastOutcome("poll_closed")
	OutcomeSelectionLimitExceeded = CastOutcome("selection_limit_exceeded")
	OutcomeAlreadyVoted           = CastOutcome("already_voted")
	OutcomeLoginRequired          = CastOutcome("login_required")
)

// CastOutcome is the terminal state of a single vote-cast attempt.
type CastOutcome string

// Domain types

// Poll is the aggregate root: a question with ordered choices, each holding
// its votes. The whole aggregate is written atomically as one document.
type Poll struct {
	ID                 string         `json:"id"`
	Question           string         `json:"question"`
	Choices            []Choice       `json:"choices"`
	CreatedAt          time.Time      `json:"created_at"`
	CreatedBy          string         `json:"created_by,omitempty"`
	VotingStart        time.Time      `json:"voting_start"`
	VotingEnd          *time.Time     `json:"voting_end,omitempty"`
	ResultsAvailableAt time.Time      `json:"results_available_at"`
	ProtectionMode     ProtectionMode `json:"protection_mode"`
	SelectionLimit     int            `json:"selection_limit"`

	// Version is the optimistic-concurrency token maintained by the store.
	// It is not part of the document payload.
	Version int64 `json:"-"`
}

// Choice is owned by its poll; votes are append-only.
type Choice struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes []Vote `json:"votes"`
}

// Vote is immutable once appended. The IP address is recorded for every
// vote; it is only consulted for admission under ip_address protection.
type Vote struct {
	ID        string    `json:"id"`
	CastAt    time.Time `json:"cast_at"`
	IPAddress string    `json:"ip_address"`
	UserID    string    `json:"user_id,omitempty"`
}

// User is the identity record owned by the auth layer. The engine only
// treats it as an opaque identity token for fingerprinting and audit.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	JoinedAt     time.Time `json:"joined_at"`
	CreatedPolls []string  `json:"created_polls"`
}

// CastResult is the tagged result of a vote-cast attempt. Votes is populated
// only on success; VotedPolls carries the updated cookie token set when the
// poll uses cookie protection.
type CastResult struct {
	Outcome    CastOutcome
	Votes      []Vote
	VotedPolls []string
}

// VoteCount returns the total number of votes across all choices.
func (p *Poll) VoteCount() int {
	total := 0
	for i := range p.Choices {
		total += len(p.Choices[i].Votes)
	}
	return total
}

// FindChoice returns the choice with the given ID, or nil.
func (p *Poll) FindChoice(id string) *Choice {
	for i := range p.Choices {
		if p.Choices[i].ID == id {
			return &p.Choices[i]
		}
	}
	return nil
}

// UniqueIPVoters returns the set of IP addresses that appear on any vote.
func (p *Poll) UniqueIPVoters() map[string]bool {
	unique := make(map[string]bool)
	for i := range p.Choices {
		for _, v := range p.Choices[i].Votes {
			unique[v.IPAddress] = true
		}
	}
	return unique
}

// UniqueUserVoters returns the set of user IDs that appear on any vote.
// Anonymous votes carry no user ID and are excluded.
func (p *Poll) UniqueUserVoters() map[string]bool {
	unique := make(map[string]bool)
	for i := range p.Choices {
		for _, v := range p.Choices[i].Votes {
			if v.UserID != "" {
				unique[v.UserID] = true
			}
		}
	}
	return unique
}

// Input types

// PollInput describes a poll creation request. The *In fields are offsets in
// seconds relative to the instant the request is processed.
type PollInput struct {
	Question           string         `json:"question"`
	ChoiceTexts        []string       `json:"choices"`
	VotingStartIn      *int64         `json:"voting_start_in,omitempty"`
	VotingEndIn        *int64         `json:"voting_end_in,omitempty"`
	ResultsAvailableIn *int64         `json:"results_available_in,omitempty"`
	ProtectionMode     ProtectionMode `json:"protection_mode"`
	SelectionLimit     int            `json:"selection_limit"`
}

// RequestContext carries the ambient voter identity signals for a single
// request. It is threaded explicitly; there is no shared mutable request
// state.
type RequestContext struct {
	IPAddress  string
	UserID     string
	VotedPolls []string
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
