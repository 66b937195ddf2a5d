package models

import (
	"net/http"
	"strings"
	"time"
)

// EndpointClass categorizes endpoints for differentiated rate limiting.
type EndpointClass string

const (
	// ClassRead: list and lookup endpoints
	ClassRead EndpointClass = "read"
	// ClassWrite: profile and family-tree mutations
	ClassWrite EndpointClass = "write"
	// ClassWorkflow: claim and invitation transitions, which notify other users
	ClassWorkflow EndpointClass = "workflow"
)

func (c EndpointClass) IsValid() bool {
	switch c {
	case ClassRead, ClassWrite, ClassWorkflow:
		return true
	}
	return false
}

// Limit is a sliding-window allowance.
type Limit struct {
	Requests int
	Window   time.Duration
}

// DefaultLimits are the per-user allowances applied when nothing is configured.
func DefaultLimits() map[EndpointClass]Limit {
	return map[EndpointClass]Limit{
		ClassRead:     {Requests: 300, Window: time.Minute},
		ClassWrite:    {Requests: 60, Window: time.Minute},
		ClassWorkflow: {Requests: 30, Window: time.Minute},
	}
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

type UserRateLimitExceededResponse struct {
	Error          string `json:"error"`
	Message        string `json:"error_description"`
	QuotaLimit     int    `json:"quota_limit"`
	QuotaRemaining int    `json:"quota_remaining"`
	QuotaReset     int64  `json:"quota_reset"`
}

const KeyPrefixUser = "user"

// SanitizeKeySegment escapes the key delimiter so an identifier containing
// ':' cannot address another bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// UserKey is the bucket key for one user and endpoint class.
func UserKey(userID string, class EndpointClass) string {
	return KeyPrefixUser + ":" + SanitizeKeySegment(userID) + ":" + string(class)
}

var workflowPrefixes = []string{"/claims", "/invitations"}

// Classify maps a request onto its endpoint class. Reads are GET requests;
// mutations under the claim and invitation routes are workflow transitions.
func Classify(r *http.Request) EndpointClass {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return ClassRead
	}
	path := r.URL.Path
	for _, p := range workflowPrefixes {
		if strings.Contains(path, p) {
			return ClassWorkflow
		}
	}
	return ClassWrite
}
