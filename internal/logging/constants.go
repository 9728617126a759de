package logging

// Standardized field names for structured logging.
// These constants keep field naming consistent across the engine's log
// output, making runs easier to filter and compare.
const (
	FieldFile        = "file"
	FieldPeriod      = "period"
	FieldCategory    = "category"
	FieldCount       = "count"
	FieldDuplicates  = "duplicates"
	FieldIgnored     = "ignored"
	FieldFingerprint = "fingerprint"
)
