/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or protocol errors both inside
the server and in the reject lines sent back to clients.
*/
package errs

// 1xxx: Session and Pseudo Errors
const (
	// ErrNotAuthenticated indicates a command that requires a selected pseudo
	// was issued on an unauthenticated session.
	ErrNotAuthenticated = 1001

	// ErrPseudoUnavailable indicates the selected pseudo is neither in the
	// catalog nor a previously used name, or is bound to another live session.
	ErrPseudoUnavailable = 1002

	// ErrPseudoTaken indicates the requested new pseudo is currently bound to a live session.
	ErrPseudoTaken = 1003
)

// 2xxx: Group Business Logic Errors
const (
	// ErrGroupExists indicates the attempted group name for creation already exists.
	ErrGroupExists = 2101

	// ErrGroupNotFound indicates the named group does not exist.
	ErrGroupNotFound = 2102

	// ErrAlreadyInGroup indicates the caller is already a member of the group.
	ErrAlreadyInGroup = 2103

	// ErrNotInGroup indicates the caller is not a member of the group.
	ErrNotInGroup = 2104

	// ErrNotInGroupOrMissing indicates a group message could not be routed because
	// the caller is not a member or the group does not exist.
	ErrNotInGroupOrMissing = 2105

	// ErrGroupGone indicates an accepted invitation points at a group that was
	// deleted while the invitation was pending.
	ErrGroupGone = 2106
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
