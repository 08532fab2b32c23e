package chemistry

// SourceStatus is the outcome class of one source attempt.
type SourceStatus string

const (
	// StatusFound means the source produced at least one identity field.
	StatusFound SourceStatus = "found"
	// StatusNotFound means the source answered but knows nothing about the
	// structure.
	StatusNotFound SourceStatus = "not_found"
	// StatusFailed means the source could not answer (network failure,
	// timeout, malformed payload).  The chain treats it like StatusNotFound
	// but metrics and logs keep the distinction.
	StatusFailed SourceStatus = "failed"
)

// SourceResult is the explicit outcome of a single resolution-source call.
// No nil-record conventions: the status says what happened, the record is
// only meaningful when Status is StatusFound.
type SourceResult struct {
	Status     SourceStatus   `json:"status"`
	Record     IdentityRecord `json:"record,omitempty"`
	FailReason string         `json:"fail_reason,omitempty"`
}

// Found wraps a populated record.
func Found(record IdentityRecord) SourceResult {
	return SourceResult{Status: StatusFound, Record: record}
}

// NotFound reports a clean miss.
func NotFound() SourceResult {
	return SourceResult{Status: StatusNotFound}
}

// Failed reports an unusable source with the reason kept for diagnostics.
func Failed(reason string) SourceResult {
	return SourceResult{Status: StatusFailed, FailReason: reason}
}
