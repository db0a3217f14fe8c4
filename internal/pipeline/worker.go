package pipeline

import (
	"context"
	"log/slog"
)

// Worker processes a single document job.
type Worker struct {
	converter *Converter
	log       *slog.Logger
}

func NewWorker(converter *Converter, log *slog.Logger) *Worker {
	return &Worker{
		converter: converter,
		log:       log,
	}
}

// phaseStatus maps converter phase names to job statuses.
var phaseStatus = map[string]JobStatus{
	"analyzing":  StatusAnalyzing,
	"splitting":  StatusSplitting,
	"rebuilding": StatusRebuilding,
}

// Process runs the full split pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "shutdown")
		return
	}

	lastPhase := "queued"
	res, err := w.converter.ConvertWithProgress(job.FileData(), job.Params(), func(phase string) {
		lastPhase = phase
		if status, ok := phaseStatus[phase]; ok {
			job.SetStatus(status, phase)
		}
	})
	if err != nil {
		log.Error("split failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, lastPhase)
		return
	}

	job.SetResult(res.Data, res.Elements, res.Markers, res.Images)
	job.SetStatus(StatusCompleted, "done")
	log.Info("split complete",
		"elements", res.Elements,
		"markers", res.Markers,
		"images", res.Images)
}
