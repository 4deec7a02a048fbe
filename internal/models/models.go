package models

import (
	"time"
)

// CheckRequest is the input for an ads check. At least one of the two
// identity fields must be non-empty after trimming.
type CheckRequest struct {
	Domain       string `json:"domain,omitempty"`
	FacebookPage string `json:"facebook_page,omitempty"`
}

// ResolvedIdentity is the complete identity produced by the resolver.
// MetaPageID is populated only when a page reference is known.
type ResolvedIdentity struct {
	Domain       string `json:"domain,omitempty"`
	FacebookPage string `json:"facebook_page,omitempty"`
	MetaPageID   string `json:"meta_page_id,omitempty"`
}

// DetectionResult holds one per-platform ad-activity signal each.
// A nil pointer means "could not be determined" (every provider strategy
// for that platform failed), which is distinct from a determined false.
type DetectionResult struct {
	HasMetaAds   *bool `json:"has_meta_ads"`
	HasGoogleAds *bool `json:"has_google_ads"`
}

// CheckResponse is the externally visible outcome of a check.
// Success is true iff identity resolution produced a complete identity;
// undetermined detection signals degrade Message, not Success.
type CheckResponse struct {
	Domain       string    `json:"domain,omitempty"`
	FacebookPage string    `json:"facebook_page,omitempty"`
	MetaPageID   string    `json:"meta_page_id,omitempty"`
	HasMetaAds   *bool     `json:"has_meta_ads"`
	HasGoogleAds *bool     `json:"has_google_ads"`
	Success      bool      `json:"success"`
	Message      string    `json:"message,omitempty"`
	Cached       bool      `json:"cached"`
	Timestamp    time.Time `json:"timestamp"`
}

// Identity returns the resolved identity carried in the response.
func (r *CheckResponse) Identity() ResolvedIdentity {
	return ResolvedIdentity{
		Domain:       r.Domain,
		FacebookPage: r.FacebookPage,
		MetaPageID:   r.MetaPageID,
	}
}

// Bool returns a pointer to b, for building determined detection fields.
func Bool(b bool) *bool {
	return &b
}

// LogSeverity represents the severity level of a log entry
type LogSeverity string

const (
	LogSeverityLow    LogSeverity = "low"
	LogSeverityMedium LogSeverity = "medium"
	LogSeverityHigh   LogSeverity = "high"
)

// ProcessType represents the type of process that created the log
type ProcessType string

const (
	ProcessTypeRequest  ProcessType = "request"
	ProcessTypeInternal ProcessType = "internal"
)

// LogEvent represents a process-specific logging context
type LogEvent struct {
	ProcessID   string      `json:"process_id"`
	ProcessType ProcessType `json:"process_type"`
	StartTime   time.Time   `json:"start_time"`
	ClientIP    string      `json:"client_ip,omitempty"`
}

// LogEntry represents a structured log entry for database storage
type LogEntry struct {
	ID          string                 `json:"id"`
	Timestamp   time.Time              `json:"timestamp"`
	Severity    LogSeverity            `json:"severity,omitempty"`
	Message     string                 `json:"message"`
	Operation   string                 `json:"operation"`
	TargetName  string                 `json:"target_name,omitempty"`
	ProcessID   string                 `json:"process_id"`
	ProcessType ProcessType            `json:"process_type"`
	ClientIP    string                 `json:"client_ip,omitempty"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
