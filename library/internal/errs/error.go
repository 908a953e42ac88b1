package errs

import (
	"errors"
)

type Kind uint8

const (
	KindNotFound Kind = iota + 1
	KindInvalidRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindInvalidRequest:
		return "InvalidRequest"
	default:
		return "Unknown"
	}
}

// Error is a business error with a machine-checkable kind and a message shown to the caller as is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on kind, and on message too unless the target message is empty.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && (t.Message == "" || t.Message == e.Message)
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func InvalidRequest(msg string) error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

var (
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest}

	ErrBookNotFound      = NotFound("Book not found")
	ErrUserNotFound      = NotFound("User not found")
	ErrBorrowingNotFound = NotFound("Borrowing not found")

	ErrNoCopiesAvailable = InvalidRequest("No copies available")
	ErrAlreadyReturned   = InvalidRequest("Already returned")
	ErrNotOwner          = InvalidRequest("Cannot return someone else's borrowing")
	ErrUnableToReturn    = InvalidRequest("Unable to return borrowing")

	ErrIsbnExists       = InvalidRequest("ISBN already exists")
	ErrEmailExists      = InvalidRequest("Email already exists")
	ErrAvailableExceeds = InvalidRequest("availableQuantity cannot exceed totalQuantity")
	ErrTotalBelowLent   = InvalidRequest("totalQuantity cannot be less than borrowed copies")

	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvariant means the guarded update and the follow-up read disagree. It is never a business outcome.
	ErrInvariant = errors.New("invariant violation")
)
