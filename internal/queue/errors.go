package queue

import (
	"errors"
	"fmt"
)

// Kind classifies a core failure so adapters can react without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindLocked
	KindConflict
	KindPolicyViolation
	KindValidation
	KindOperationFailed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindLocked:
		return "locked"
	case KindConflict:
		return "conflict"
	case KindPolicyViolation:
		return "policy_violation"
	case KindValidation:
		return "validation"
	case KindOperationFailed:
		return "operation_failed"
	}
	return "unknown"
}

// Error is the typed failure returned by every core operation. Two errors
// match under errors.Is when their codes are equal.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// KindOf returns the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return KindUnknown
}

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrQueueNotFound             = newError(KindNotFound, "QUEUE_NOT_FOUND", "queue not found")
	ErrNotInQueue                = newError(KindNotFound, "NOT_IN_QUEUE", "user is not in the queue")
	ErrNoActiveSession           = newError(KindNotFound, "NO_ACTIVE_SESSION", "no active session")
	ErrQueueEmpty                = newError(KindNotFound, "QUEUE_EMPTY", "queue is empty")
	ErrScheduleNotFound          = newError(KindNotFound, "SCHEDULE_NOT_FOUND", "no schedule for that day")
	ErrQueueLocked               = newError(KindLocked, "QUEUE_LOCKED", "queue is locked")
	ErrAlreadyInQueue            = newError(KindConflict, "ALREADY_IN_QUEUE", "user is already in the queue")
	ErrSessionAlreadyActive      = newError(KindConflict, "SESSION_ALREADY_ACTIVE", "tutor already has an active session")
	ErrQueueExists               = newError(KindConflict, "QUEUE_EXISTS", "queue already exists")
	ErrAlreadyInState            = newError(KindConflict, "ALREADY_IN_STATE", "queue is already in that state")
	ErrTutorCannotJoinQueue      = newError(KindPolicyViolation, "TUTOR_CANNOT_JOIN_QUEUE", "tutors with an active session cannot join a queue")
	ErrStudentCannotStartSession = newError(KindPolicyViolation, "STUDENT_CANNOT_START_SESSION", "members of a queue cannot start a session")
	ErrInvalidDay                = newError(KindValidation, "INVALID_DAY", "invalid day of week")
	ErrInvalidTime               = newError(KindValidation, "INVALID_TIME", "time must be HH:mm")
	ErrInvalidWindow             = newError(KindValidation, "INVALID_WINDOW", "start time must be before end time")
	ErrInvalidShift              = newError(KindValidation, "INVALID_SHIFT", "shift must be between -720 and 720 minutes")
	ErrInvalidName               = newError(KindValidation, "INVALID_NAME", "queue name must not be empty")
	ErrRoomCreation              = newError(KindOperationFailed, "ROOM_CREATION_FAILED", "failed to create session room")
)

// with returns a copy of the sentinel carrying a specific message and cause.
func (e *Error) with(msg string, cause error) *Error {
	c := *e
	if msg != "" {
		c.Message = msg
	}
	c.Err = cause
	return &c
}

func alreadyInState(locked bool) *Error {
	if locked {
		return ErrAlreadyInState.with("queue is already locked", nil)
	}
	return ErrAlreadyInState.with("queue is already unlocked", nil)
}

func storeFailure(op string, err error) *Error {
	return &Error{Kind: KindOperationFailed, Code: "STORE_ERROR", Message: op, Err: err}
}
