package pipeline

import "fmt"

// Stage identifies where a document conversion failed. Anything below
// open/save recovers locally; these three surface as a per-document
// failure without touching the rest of the batch.
type Stage string

const (
	StageOpen    Stage = "open"
	StageExtract Stage = "extract"
	StageRebuild Stage = "rebuild"
)

// DocumentError is a fatal per-document failure.
type DocumentError struct {
	Stage Stage
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

func failed(stage Stage, err error) *DocumentError {
	return &DocumentError{Stage: stage, Err: err}
}
