package domain

import (
	"net/http"
	"time"
)

// FetchOutcome is the result of one logical GET. Body is nil exactly when the
// server answered 304 to a conditional request.
type FetchOutcome struct {
	URL         string
	Status      int
	Body        []byte
	NotModified bool
	Header      http.Header
}

type RevalidationEntry struct {
	URL          string    `db:"url"`
	ETag         *string   `db:"etag"`
	LastModified *string   `db:"last_modified"`
	UpdatedAt    time.Time `db:"updated_at"`
}
