package feed

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrFeedUnreachable means the feed could not be fetched or parsed at all.
	ErrFeedUnreachable = errors.New("feed unreachable")

	// ErrEmptyFeed means the feed parsed fine but contains zero items.
	ErrEmptyFeed = errors.New("empty feed")

	// ErrMalformedItem means an item lacks a required field after every
	// fallback was tried.
	ErrMalformedItem = errors.New("malformed feed item")
)

// MalformedItemError reports which item position could not be normalized.
// Index is zero based and counts items in feed order.
type MalformedItemError struct {
	Index int
}

func (e *MalformedItemError) Error() string {
	return fmt.Sprintf("malformed feed item at index %d", e.Index)
}

func (e *MalformedItemError) Unwrap() error {
	return ErrMalformedItem
}
