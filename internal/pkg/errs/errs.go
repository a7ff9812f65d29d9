package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired           = errors.New("value is required")
	ErrValueIsInvalid            = errors.New("value is invalid")
	ErrValueIsOutOfRange         = errors.New("value is out of range")
	ErrObjectNotFound            = errors.New("object not found")
	ErrObjectAlreadyExists       = errors.New("object already exists")
	ErrStatusTransitionIsInvalid = errors.New("status transition is invalid")
	ErrConcurrentModification    = errors.New("object was modified concurrently")
	ErrActionIsForbidden         = errors.New("action is forbidden")
	ErrCredentialsAreInvalid     = errors.New("credentials are invalid")
	ErrStorage                   = errors.New("storage failure")
)

// IsValidation reports whether err is one of the input validation kinds.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// ParamName extracts the offending parameter name from the first validation
// error found in err's tree. It returns "" when there is none.
func ParamName(err error) string {
	var required *ValueIsRequiredError
	if errors.As(err, &required) {
		return required.ParamName
	}
	var invalid *ValueIsInvalidError
	if errors.As(err, &invalid) {
		return invalid.ParamName
	}
	var outOfRange *ValueIsOutOfRangeError
	if errors.As(err, &outOfRange) {
		return outOfRange.ParamName
	}
	return ""
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that is present but malformed.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports that the object identified by ID does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectAlreadyExistsError reports a unique key collision.
type ObjectAlreadyExistsError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewObjectAlreadyExistsError(paramName string, value any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, Value: value}
}

func NewObjectAlreadyExistsErrorWithCause(paramName string, value any, cause error) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *ObjectAlreadyExistsError) Error() string {
	return withCause(fmt.Sprintf("%s: %s is %s", ErrObjectAlreadyExists, e.ParamName, sanitize(e.Value)), e.Cause)
}

func (e *ObjectAlreadyExistsError) Unwrap() error {
	return ErrObjectAlreadyExists
}

// StatusTransitionIsInvalidError names the (current, requested) pair the order
// state machine refused.
type StatusTransitionIsInvalidError struct {
	From string
	To   string
}

func NewStatusTransitionIsInvalidError(from, to string) *StatusTransitionIsInvalidError {
	return &StatusTransitionIsInvalidError{From: from, To: to}
}

func (e *StatusTransitionIsInvalidError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrStatusTransitionIsInvalid, e.From, e.To)
}

func (e *StatusTransitionIsInvalidError) Unwrap() error {
	return ErrStatusTransitionIsInvalid
}

// ConcurrentModificationError reports that a write lost a race against another
// transaction on the same object. The losing write was not applied.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func NewConcurrentModificationErrorWithCause(paramName string, id any, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrConcurrentModification, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// ActionIsForbiddenError reports that the acting user may not perform Action.
type ActionIsForbiddenError struct {
	Action string
	Cause  error
}

func NewActionIsForbiddenError(action string) *ActionIsForbiddenError {
	return &ActionIsForbiddenError{Action: action}
}

func NewActionIsForbiddenErrorWithCause(action string, cause error) *ActionIsForbiddenError {
	return &ActionIsForbiddenError{Action: action, Cause: cause}
}

func (e *ActionIsForbiddenError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrActionIsForbidden, e.Action), e.Cause)
}

func (e *ActionIsForbiddenError) Unwrap() error {
	return ErrActionIsForbidden
}

// StorageError wraps a failure of the backing store. Both the sentinel and the
// driver error are reachable through errors.Is / errors.As.
type StorageError struct {
	Operation string
	Cause     error
}

func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{Operation: operation, Cause: cause}
}

func (e *StorageError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStorage, e.Operation), e.Cause)
}

func (e *StorageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStorage}
	}
	return []error{ErrStorage, e.Cause}
}
