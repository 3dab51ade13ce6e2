package store

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrRemoteWrite = errors.New("remote write failed")
	ErrRemoteRead  = errors.New("remote read failed")
	ErrPersist     = errors.New("local persistence failed")
)

// ValidationError rejects malformed mutation input before any I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// RemoteWriteError is a mutation the backend did not accept. Nothing was
// applied locally and no audit entry was written.
type RemoteWriteError struct {
	Op  string
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteWriteError) Is(target error) bool { return target == ErrRemoteWrite }
func (e *RemoteWriteError) Unwrap() error        { return e.Err }

// RemoteReadError is a failed fetch of one collection during a reload. In the
// offline variant the source is local storage rather than the backend.
type RemoteReadError struct {
	Collection string
	Err        error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Collection, e.Err)
}

func (e *RemoteReadError) Is(target error) bool { return target == ErrRemoteRead }
func (e *RemoteReadError) Unwrap() error        { return e.Err }

// PersistError is a failed write-through to local storage.
type PersistError struct {
	Bucket string
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Bucket, e.Err)
}

func (e *PersistError) Is(target error) bool { return target == ErrPersist }
func (e *PersistError) Unwrap() error        { return e.Err }
