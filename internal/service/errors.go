package service

import "errors"

// Kind classifies service failures so the HTTP layer can map them in one place.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindPermission
	KindInvalidCredentials
	KindUnavailable
)

// Error is a user-facing failure. Anything else returned by a service is a
// store failure and must not be shown to the client verbatim.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func invalid(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

// KindOf returns the kind of a service error, or false for store failures.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

var (
	ErrUserNotFound       = &Error{KindNotFound, "User not found"}
	ErrUsernameTaken      = &Error{KindConflict, "Username already exists"}
	ErrInvalidCredentials = &Error{KindInvalidCredentials, "Invalid username or password"}

	ErrVideoNotFound  = &Error{KindNotFound, "Video not found"}
	ErrNotVideoOwner  = &Error{KindPermission, "Only the owner can change this video"}
	ErrAlreadyLiked   = &Error{KindConflict, "You already liked this video"}
	ErrUploadDisabled = &Error{KindUnavailable, "Uploads are not available"}

	ErrCommentNotFound  = &Error{KindNotFound, "Comment not found"}
	ErrNotCommentAuthor = &Error{KindPermission, "Only the author can change this comment"}

	ErrCannotFollowSelf = &Error{KindValidation, "You cannot follow yourself"}
	ErrAlreadyFollowed  = &Error{KindConflict, "You already follow this user"}
	ErrNotFollowed      = &Error{KindConflict, "You do not follow this user"}

	ErrMessageNotFound    = &Error{KindNotFound, "Message not found"}
	ErrNotMessageSender   = &Error{KindPermission, "Only the sender can delete this message"}
	ErrMessageAlreadyRead = &Error{KindPermission, "The message has already been read"}
)
