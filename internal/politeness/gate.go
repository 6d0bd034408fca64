package politeness

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/temoto/robotstxt"

	"club_harvester/internal/metrics"
)

// Decision is the outcome of a single policy check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Gate answers allow/deny questions against one exclusion document,
// loaded once per run. A zero or nil Gate denies everything.
type Gate struct {
	loaded bool
	// nil when no group applies to the agent
	group *robotstxt.Group
}

// Load parses a robots document for the given user agent.
// An empty document is rejected: it must never be read as "no rules".
func Load(body []byte, userAgent string) (*Gate, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty robots document")
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}
	return &Gate{loaded: true, group: data.FindGroup(userAgent)}, nil
}

// Allowed reports whether rawURL may be fetched.
func (g *Gate) Allowed(rawURL string) Decision {
	if g == nil || !g.loaded {
		metrics.ObservePolicySkip()
		return Decision{Allowed: false, Reason: "policy not loaded"}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		metrics.ObservePolicySkip()
		return Decision{Allowed: false, Reason: "invalid url"}
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	if g.group != nil && !g.group.Test(path) {
		metrics.ObservePolicySkip()
		return Decision{Allowed: false, Reason: "disallowed by robots.txt"}
	}
	return Decision{Allowed: true, Reason: "allowed by robots.txt"}
}
