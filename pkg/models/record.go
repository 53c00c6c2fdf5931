// Package models contains shared data models used across the ToolBelt-AI codebase.
package models

// Feature kinds understood by the schema registry.
const (
	KindOrdinal     = "ordinal"
	KindCategorical = "categorical"
	KindNumeric     = "numeric"
)

// JobRecord maps feature names to raw values extracted from a job
// description: strings for ordinal/categorical features, numbers for
// numeric ones. Records come from an untrusted upstream extractor and
// may omit any number of fields.
type JobRecord map[string]any

// Clone returns a shallow copy of the record.
func (r JobRecord) Clone() JobRecord {
	out := make(JobRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
