package timespec

import "errors"

// Sentinel errors returned (wrapped) by Resolve and Classify. Match with
// errors.Is. All are terminal: a failed constraint set is never relaxed.
var (
	// ErrMalformedToken indicates a token that matches no recognized
	// grammar, or a numeric sub-part that does not parse as an integer.
	ErrMalformedToken = errors.New("unrecognized timespec token")

	// ErrDirectionViolation indicates an explicit date token on the wrong
	// side of the reference instant for the requested search direction.
	ErrDirectionViolation = errors.New("specified date out of range")

	// ErrEmptyCandidates indicates a zero-length explicit candidate list.
	ErrEmptyCandidates = errors.New("empty candidates list")

	// ErrEmptyDomain indicates a field whose predicates exclude every
	// value in its natural range (for example day=32).
	ErrEmptyDomain = errors.New("no matching value")

	// ErrNoMatch indicates the search exhausted its horizon (or the
	// candidate list) without finding a satisfying instant.
	ErrNoMatch = errors.New("no matching datetime")
)
