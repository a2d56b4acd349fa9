package domain

import "time"

// DecisionType classifies what a decision is about.
type DecisionType string

const (
	DecisionWorkerAssignment  DecisionType = "worker_assignment"
	DecisionScheduling        DecisionType = "scheduling"
	DecisionPricing           DecisionType = "pricing"
	DecisionEmergencyResponse DecisionType = "emergency_response"
	DecisionScheduleConflict  DecisionType = "schedule_conflict"
	DecisionScopeChange       DecisionType = "scope_change"
	DecisionQualityIssue      DecisionType = "quality_issue"
	DecisionWeatherDelay      DecisionType = "weather_delay"
)

// Resolution is the autonomous outcome of a decision.
type Resolution string

const (
	ResolutionAutoResolve     Resolution = "auto_resolve"
	ResolutionRequestApproval Resolution = "request_approval"
	ResolutionEscalate        Resolution = "escalate_to_human"
)

// Confidence expresses how certain the engine is about a decision.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// NotificationChannel identifies the outbound messaging channel.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// Notification is a side-effect instruction declared on a decision. The
// engine never sends anything itself; execution belongs to the messaging
// collaborator.
type Notification struct {
	Channel   NotificationChannel `json:"channel"`
	Recipient string              `json:"recipient"` // "client", "contractor", or an address
	Subject   string              `json:"subject,omitempty"`
	Body      string              `json:"body"`
}

// Decision is the unifying output type of the engine. Its reasoning trail is
// sufficient to reconstruct why it was made from its inputs alone.
type Decision struct {
	Type                DecisionType   `json:"type"`
	Resolution          Resolution     `json:"resolution"`
	Confidence          Confidence     `json:"confidence"`
	Reasoning           []string       `json:"reasoning"`
	Notifications       []Notification `json:"notifications,omitempty"`
	RescheduleRequested bool           `json:"reschedule_requested,omitempty"`
	NextSteps           []string       `json:"next_steps,omitempty"`
	DecidedAt           time.Time      `json:"decided_at"`
}

// ExceptionContext carries the facts about an in-flight exception event.
// Only the fields relevant to the exception's type are consulted; the policy
// table in the policy package is the full specification of how.
type ExceptionContext struct {
	JobID          int64   `json:"job_id,string"`
	EmergencyLevel string  `json:"emergency_level,omitempty"` // critical, high, medium, low
	ConflictType   string  `json:"conflict_type,omitempty"`   // tool_conflict, overlap, ...
	CostImpact     float64 `json:"cost_impact,omitempty"`
	Severity       string  `json:"severity,omitempty"` // low, medium, high
	DelayHours     float64 `json:"delay_hours,omitempty"`
	Location       string  `json:"location,omitempty"`
	Description    string  `json:"description,omitempty"`
	ClientName     string  `json:"client_name,omitempty"`
	ClientPhone    string  `json:"client_phone,omitempty"`
}
