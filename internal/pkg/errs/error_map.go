/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to
standardize the reject lines written back to clients and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value carries the client-facing
// detail text and the protocol status line it is reported under.
var errorMap = map[int]CustomError{
	// 1xxx: Session and Pseudo Errors
	ErrNotAuthenticated:  {Code: ErrNotAuthenticated, Message: "Select a pseudo first", Status: http.StatusForbidden},
	ErrPseudoUnavailable: {Code: ErrPseudoUnavailable, Message: "Pseudo not available or invalid", Status: http.StatusForbidden},
	ErrPseudoTaken:       {Code: ErrPseudoTaken, Message: "Pseudo Already Taken", Status: http.StatusForbidden},

	// 2xxx: Group Business Logic Errors
	ErrGroupExists:         {Code: ErrGroupExists, Message: "Group %s already exists", Status: http.StatusForbidden},
	ErrGroupNotFound:       {Code: ErrGroupNotFound, Message: "Group does not exist", Status: http.StatusForbidden},
	ErrAlreadyInGroup:      {Code: ErrAlreadyInGroup, Message: "You are already in the group", Status: http.StatusForbidden},
	ErrNotInGroup:          {Code: ErrNotInGroup, Message: "You are not in this group", Status: http.StatusForbidden},
	ErrNotInGroupOrMissing: {Code: ErrNotInGroupOrMissing, Message: "You are not in this group or it does not exist", Status: http.StatusForbidden},
	ErrGroupGone:           {Code: ErrGroupGone, Message: "Group %s no longer exists", Status: http.StatusForbidden},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
