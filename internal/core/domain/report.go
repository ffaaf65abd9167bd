package domain

import "time"

// BuildReport records what one index build did: how many records were
// indexed, which were skipped and why. Skipped records are reported
// loudly rather than failing the build, up to a configured threshold.
type BuildReport struct {
	// BuildID uniquely identifies this build run.
	BuildID string `json:"build_id"`

	// Indexed is the number of documents that made it into the artifact.
	Indexed int `json:"indexed"`

	// Skipped lists the records excluded from the build, each
	// attributable to one offending record.
	Skipped []*RecordError `json:"-"`

	// Duration is how long the build took.
	Duration time.Duration `json:"duration"`
}

// SkippedIDs returns the ids of all skipped records, for user-visible
// failure reporting.
func (r *BuildReport) SkippedIDs() []string {
	ids := make([]string, 0, len(r.Skipped))
	for _, re := range r.Skipped {
		ids = append(ids, re.RecordID)
	}
	return ids
}
