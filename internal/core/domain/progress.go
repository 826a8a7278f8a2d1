package domain

// ProgressStatus is a stage of the recipe pipeline.
type ProgressStatus string

// Pipeline stages, in the order a successful run emits them.
const (
	StatusExtracting  ProgressStatus = "extracting"
	StatusExtracted   ProgressStatus = "extracted"
	StatusAnalyzing   ProgressStatus = "analyzing"
	StatusAnalyzed    ProgressStatus = "analyzed"
	StatusCreating    ProgressStatus = "creating"
	StatusCreated     ProgressStatus = "created"
	StatusRedirecting ProgressStatus = "redirecting"
	StatusError       ProgressStatus = "error"
)

// IsValid returns true if the status is recognised.
func (s ProgressStatus) IsValid() bool {
	switch s {
	case StatusExtracting, StatusExtracted, StatusAnalyzing, StatusAnalyzed,
		StatusCreating, StatusCreated, StatusRedirecting, StatusError:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for the last event of a run.
func (s ProgressStatus) IsTerminal() bool {
	return s == StatusRedirecting || s == StatusError
}

// String returns the string representation.
func (s ProgressStatus) String() string {
	return string(s)
}

// ProgressEvent is one message of the progress stream.
type ProgressEvent struct {
	Status  ProgressStatus `json:"status"`
	Message string         `json:"message"`
	URL     string         `json:"url,omitempty"`
}

// SuccessSequence is the exact status sequence of a successful run.
func SuccessSequence() []ProgressStatus {
	return []ProgressStatus{
		StatusExtracting, StatusExtracted,
		StatusAnalyzing, StatusAnalyzed,
		StatusCreating, StatusCreated,
		StatusRedirecting,
	}
}
