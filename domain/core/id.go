package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID represents a locally generated identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RequestID tags an outbound upstream call
type RequestID ID

func (id RequestID) String() string { return ID(id).String() }

// NewRequestID returns a fresh RequestID
func NewRequestID() RequestID { return RequestID(NewID()) }

// ListingID is the numeric identifier the moderation API assigns to an ad.
type ListingID int64

func (id ListingID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParseListingID parses a path segment into a ListingID
func ParseListingID(s string) (ListingID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: listing id cannot be empty", ErrInvalidInput)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: listing id %q must be a positive integer", ErrInvalidInput, s)
	}
	return ListingID(n), nil
}
