package ports

import (
	"context"

	"serovis/domain/titer"
)

// RunArchive persists pipeline run records. Archiving is optional;
// services treat a nil archive as "don't persist".
type RunArchive interface {
	SaveRun(ctx context.Context, rec *titer.RunRecord, specs *titer.SpecSet) error
}
