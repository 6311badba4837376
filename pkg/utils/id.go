package utils

import (
	"github.com/oklog/ulid/v2"
)

// NewRequestID returns a time-sortable ULID. It is safe for concurrent use.
func NewRequestID() string {
	return ulid.Make().String()
}
