package export

import (
	"context"
	"log/slog"

	"annotation-exporter/internal/convert"
	"annotation-exporter/internal/rossum"
)

// Exporter runs the export pipeline for one annotation:
// fetch from the source API, convert to XML, deliver to the result endpoint.
type Exporter struct {
	client *rossum.Client
	log    *slog.Logger
}

func New(client *rossum.Client, log *slog.Logger) *Exporter {
	return &Exporter{
		client: client,
		log:    log,
	}
}

// Process runs the pipeline end to end and reports the outcome as a success
// flag plus an error message for the caller. Failures never propagate as
// errors past this boundary.
func (e *Exporter) Process(ctx context.Context, queueID, annotationID int) (bool, string) {
	log := e.log.With("queue_id", queueID, "annotation_id", annotationID)

	ann, err := e.client.FetchAnnotation(ctx, queueID, annotationID)
	if err != nil {
		log.Error("annotation fetch failed", "error", err)
		return false, err.Error()
	}

	if len(ann.Results) == 0 {
		log.Info("annotation not found")
		return false, "Couldn't find the annotation."
	}

	xmlResult, err := convert.ToXML(ann.Results[0].Content)
	if err != nil {
		// Conversion writes to memory and fills defaults for missing data;
		// a failure here is a bug, not a user-facing condition.
		log.Error("conversion failed", "error", err)
		return false, "Internal error"
	}

	// Best-effort delivery: log the failure, keep the success outcome.
	if err := e.client.SubmitResult(ctx, annotationID, xmlResult); err != nil {
		log.Warn("result submission failed", "error", err)
	}

	return true, ""
}
