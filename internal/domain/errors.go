package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ValidationError is raised before any store call when input is unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

var ErrValidation = ValidationError{}

// StorageError wraps a failed store operation.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage: %s failed", e.Op)
	}
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error {
	return e.Err
}

func (e StorageError) Is(target error) bool {
	_, ok := target.(StorageError)
	if ok {
		return true
	}
	_, ok = target.(*StorageError)
	return ok
}

var ErrStorage = StorageError{}

// SyncStage names the link step that failed after the scalar write landed.
type SyncStage string

const (
	SyncStageDelete  SyncStage = "delete"
	SyncStageInsert  SyncStage = "insert"
	SyncStageReplace SyncStage = "replace"
)

// PartialSyncError reports that the application fields were written but the
// link set could not be brought to the desired state. Callers retry the link
// step only.
type PartialSyncError struct {
	ApplicationID string
	Stage         SyncStage
	Err           error
}

func (e PartialSyncError) Error() string {
	return fmt.Sprintf("application %s saved but link %s failed: %v", e.ApplicationID, e.Stage, e.Err)
}

func (e PartialSyncError) Unwrap() error {
	return e.Err
}

func (e PartialSyncError) Is(target error) bool {
	_, ok := target.(PartialSyncError)
	if ok {
		return true
	}
	_, ok = target.(*PartialSyncError)
	return ok
}

var ErrPartialSync = PartialSyncError{}
