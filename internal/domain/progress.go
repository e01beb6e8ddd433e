package domain

// ProgressStatus is the kind of a sync progress event
type ProgressStatus string

const (
	// ProgressStatusInfo - Scanning and bookkeeping messages
	ProgressStatusInfo ProgressStatus = "info"
	// ProgressStatusProgress - A step of processing one file
	ProgressStatusProgress ProgressStatus = "progress"
	// ProgressStatusSuccess - One file was ingested
	ProgressStatusSuccess ProgressStatus = "success"
	// ProgressStatusError - One file, or the whole run, failed
	ProgressStatusError ProgressStatus = "error"
	// ProgressStatusComplete - Terminal event of a committed sync
	ProgressStatusComplete ProgressStatus = "complete"
)

// ProgressEvent is one line of the streamed sync response.
// Events are transient and emitted in the order the steps complete.
type ProgressEvent struct {
	Status  ProgressStatus `json:"status"`
	Message string         `json:"message"`
	Detail  *string        `json:"detail,omitempty"`
	Files   []string       `json:"files,omitempty"`
}

// NewProgressEvent builds an event without detail
func NewProgressEvent(status ProgressStatus, message string) ProgressEvent {
	return ProgressEvent{Status: status, Message: message}
}

// WithDetail returns a copy of the event carrying detail
func (e ProgressEvent) WithDetail(detail string) ProgressEvent {
	e.Detail = &detail
	return e
}
