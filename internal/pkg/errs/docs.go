// Package errs provides the error taxonomy shared by every layer of the cargo
// service.
//
// Each error kind follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) usable with errors.Is
//   - a struct carrying the details of the failure
//   - New...Error and New...ErrorWithCause constructors
//   - Error() for a stable message and Unwrap() returning the sentinel
//
// The kinds map onto the lifecycle failures the HTTP adapter distinguishes:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a referenced order or user does not exist
//   - StatusTransitionIsInvalidError: the state machine rejected a move
//   - ConcurrentModificationError: another transaction changed the object first
//   - ObjectAlreadyExistsError: a unique key is already taken
//   - ActionIsForbiddenError: the actor's role does not allow the action
//   - StorageError: the store failed; nothing was applied
package errs
