package engine

import (
	"testing"
	"time"

	"github.com/ballotbox/ballotbox/models"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name       string
		mode       models.ProtectionMode
		req        models.RequestContext
		expectedFP string
		expectedOK bool
	}{
		{
			name:       "none mode has no fingerprint",
			mode:       models.ProtectionNone,
			req:        models.RequestContext{IPAddress: "1.2.3.4", UserID: "u1"},
			expectedFP: "",
			expectedOK: false,
		},
		{
			name:       "cookie mode uses poll identity",
			mode:       models.ProtectionCookie,
			req:        models.RequestContext{IPAddress: "1.2.3.4"},
			expectedFP: "poll-1",
			expectedOK: true,
		},
		{
			name:       "ip mode uses client address",
			mode:       models.ProtectionIPAddress,
			req:        models.RequestContext{IPAddress: "1.2.3.4"},
			expectedFP: "1.2.3.4",
			expectedOK: true,
		},
		{
			name:       "login mode uses user identity",
			mode:       models.ProtectionLogin,
			req:        models.RequestContext{UserID: "u1"},
			expectedFP: "u1",
			expectedOK: true,
		},
		{
			name:       "login mode without session",
			mode:       models.ProtectionLogin,
			req:        models.RequestContext{IPAddress: "1.2.3.4"},
			expectedFP: "",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll := &models.Poll{ID: "poll-1", ProtectionMode: tt.mode}
			fp, ok := Fingerprint(poll, tt.req)
			if fp != tt.expectedFP || ok != tt.expectedOK {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.expectedFP, tt.expectedOK, fp, ok)
			}
		})
	}
}

func TestHasVoted(t *testing.T) {
	now := time.Now().UTC()
	poll := &models.Poll{
		ID: "poll-1",
		Choices: []models.Choice{
			{ID: "c1", Text: "A", Votes: []models.Vote{
				{ID: "v1", CastAt: now, IPAddress: "1.2.3.4", UserID: "u1"},
			}},
			{ID: "c2", Text: "B"},
		},
	}

	tests := []struct {
		name        string
		mode        models.ProtectionMode
		fingerprint string
		tokens      []string
		expected    bool
	}{
		{name: "none never dedupes", mode: models.ProtectionNone, fingerprint: "", expected: false},
		{name: "cookie token present", mode: models.ProtectionCookie, fingerprint: "poll-1", tokens: []string{"other", "poll-1"}, expected: true},
		{name: "cookie token absent", mode: models.ProtectionCookie, fingerprint: "poll-1", tokens: []string{"other"}, expected: false},
		{name: "ip already on a vote", mode: models.ProtectionIPAddress, fingerprint: "1.2.3.4", expected: true},
		{name: "new ip", mode: models.ProtectionIPAddress, fingerprint: "5.6.7.8", expected: false},
		{name: "user already on a vote", mode: models.ProtectionLogin, fingerprint: "u1", expected: true},
		{name: "new user", mode: models.ProtectionLogin, fingerprint: "u2", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll.ProtectionMode = tt.mode
			if got := HasVoted(poll, tt.fingerprint, tt.tokens); got != tt.expected {
				t.Errorf("Expected HasVoted=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRecordVote(t *testing.T) {
	cookiePoll := &models.Poll{ID: "poll-1", ProtectionMode: models.ProtectionCookie}
	ipPoll := &models.Poll{ID: "poll-1", ProtectionMode: models.ProtectionIPAddress}

	t.Run("cookie mode appends poll id", func(t *testing.T) {
		got := RecordVote(cookiePoll, "poll-1", []string{"other"})
		if len(got) != 2 || got[0] != "other" || got[1] != "poll-1" {
			t.Errorf("Expected [other poll-1], got %v", got)
		}
	})

	t.Run("cookie mode does not duplicate", func(t *testing.T) {
		got := RecordVote(cookiePoll, "poll-1", []string{"poll-1"})
		if len(got) != 1 {
			t.Errorf("Expected single token, got %v", got)
		}
	})

	t.Run("cookie mode does not mutate input", func(t *testing.T) {
		tokens := []string{"other"}
		RecordVote(cookiePoll, "poll-1", tokens)
		if len(tokens) != 1 || tokens[0] != "other" {
			t.Errorf("Input token set was mutated: %v", tokens)
		}
	})

	t.Run("other modes leave tokens untouched", func(t *testing.T) {
		tokens := []string{"other"}
		got := RecordVote(ipPoll, "1.2.3.4", tokens)
		if len(got) != 1 || got[0] != "other" {
			t.Errorf("Expected [other], got %v", got)
		}
	})
}
