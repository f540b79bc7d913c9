package optimize

import "fmt"

// All pipeline failures are fatal: the first error aborts the invocation and
// no partially processed image is ever returned. Callers distinguish the
// three classes with errors.As.

// AcquisitionError reports that the source image could not be fetched or
// decoded. Nothing downstream runs.
type AcquisitionError struct {
	Ref string
	Err error
}

func (e *AcquisitionError) Error() string {
	return fmt.Sprintf("acquire %s: %v", e.Ref, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// ProcessingError reports an invariant violation inside a stage, e.g. a
// buffer whose byte length disagrees with its declared dimensions. These are
// unreachable under correct input but checked rather than assumed.
type ProcessingError struct {
	Stage string
	Err   error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("process (%s): %v", e.Stage, e.Err)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// EncodingError reports that the final serialization failed.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
