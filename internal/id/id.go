package id

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotCanonical marks an id with a redundant leading zero, such as "01".
var ErrNotCanonical = errors.New("not in canonical form")

// First is the id handed out for an empty collection.
const First = "1"

// ParseError reports an id that is not a non-negative integer.
type ParseError struct {
	ID  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid id %q: %v", e.ID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse converts a string id into its numeric value. Only the canonical
// decimal form is accepted, so each number has exactly one id.
func Parse(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &ParseError{ID: s, Err: err}
	}
	if Format(n) != s {
		return 0, &ParseError{ID: s, Err: ErrNotCanonical}
	}
	return n, nil
}

// Format returns the canonical string form of n.
func Format(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// Compare orders two ids numerically. Both must already be valid.
func Compare(a, b string) int {
	na, _ := Parse(a)
	nb, _ := Parse(b)
	switch {
	case na < nb:
		return -1
	case na > nb:
		return 1
	}
	return 0
}

// Next returns one past the largest id in ids, or First when ids is empty.
func Next(ids []string) (string, error) {
	var maxID uint64
	for _, s := range ids {
		n, err := Parse(s)
		if err != nil {
			return "", err
		}
		if n > maxID {
			maxID = n
		}
	}
	if maxID == ^uint64(0) {
		return "", fmt.Errorf("id space exhausted after %d", maxID)
	}
	return Format(maxID + 1), nil
}
