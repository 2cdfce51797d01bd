package rag

import "fmt"

// Stage identifies the pipeline step a fatal failure originated from.
type Stage string

const (
	StageEmbedding  Stage = "embedding"
	StageContext    Stage = "context"
	StageCompletion Stage = "completion"
)

// PipelineError wraps a failure that aborts generation, tagged with the
// originating stage for diagnostics. Index and persistence failures are
// absorbed, not wrapped; they never become a PipelineError.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("generation failed at %s stage: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
