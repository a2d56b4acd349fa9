// Package policy classifies in-flight exceptions and resolves them into
// autonomous outcomes. Each call is independent and stateless given its
// context; the resolution table below is the full policy, no other inputs
// affect the outcome. Declared side effects (notifications, reschedules) are
// executed by collaborators, never here.
package policy

import (
	"fmt"
	"time"

	"crewline.app/dispatch/internal/domain"
)

// Policy thresholds.
const (
	scopeChangeAutoLimit     = 50.0  // auto-resolve at or below
	scopeChangeApprovalLimit = 200.0 // request approval at or below
	weatherDelayAutoHours    = 4.0   // auto-reschedule at or below
)

// Engine resolves exception events. Safe for concurrent use.
type Engine struct {
	now func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve maps an exception to a decision. Unknown decision types escalate;
// they never crash the pipeline.
func (e *Engine) Resolve(decisionType domain.DecisionType, exc domain.ExceptionContext) domain.Decision {
	var d domain.Decision

	switch decisionType {
	case domain.DecisionEmergencyResponse:
		d = e.resolveEmergency(exc)
	case domain.DecisionScheduleConflict:
		d = e.resolveConflict(exc)
	case domain.DecisionScopeChange:
		d = e.resolveScopeChange(exc)
	case domain.DecisionQualityIssue:
		d = e.resolveQualityIssue(exc)
	case domain.DecisionWeatherDelay:
		d = e.resolveWeatherDelay(exc)
	default:
		d = domain.Decision{
			Type:       decisionType,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceLow,
			Reasoning:  []string{"unknown decision type"},
		}
	}

	d.DecidedAt = e.now()
	return d
}

func (e *Engine) resolveEmergency(exc domain.ExceptionContext) domain.Decision {
	if exc.EmergencyLevel != "critical" {
		return domain.Decision{
			Type:       domain.DecisionEmergencyResponse,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceMedium,
			Reasoning:  []string{fmt.Sprintf("emergency level %q requires human judgment", exc.EmergencyLevel)},
		}
	}

	location := exc.Location
	if location == "" {
		location = "unknown location"
	}

	return domain.Decision{
		Type:       domain.DecisionEmergencyResponse,
		Resolution: domain.ResolutionAutoResolve,
		Confidence: domain.ConfidenceHigh,
		Reasoning:  []string{"critical emergency: immediate dispatch with contractor and client notification"},
		Notifications: []domain.Notification{
			{
				Channel:   domain.ChannelEmail,
				Recipient: "contractor",
				Subject:   "CRITICAL EMERGENCY - Immediate Action Required",
				Body: fmt.Sprintf("Critical emergency at %s. Issue: %s. Client: %s - %s",
					location, exc.Description, exc.ClientName, exc.ClientPhone),
			},
			{
				Channel:   domain.ChannelSMS,
				Recipient: "contractor",
				Body: fmt.Sprintf("CRITICAL: %s at %s. Client: %s. Check email now.",
					exc.Description, location, exc.ClientPhone),
			},
		},
		NextSteps: []string{"contractor_notified", "emergency_worker_dispatched", "client_safety_check"},
	}
}

func (e *Engine) resolveConflict(exc domain.ExceptionContext) domain.Decision {
	if exc.ConflictType != "tool_conflict" {
		return domain.Decision{
			Type:       domain.DecisionScheduleConflict,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceMedium,
			Reasoning:  []string{fmt.Sprintf("conflict type %q is too complex to resolve automatically", exc.ConflictType)},
		}
	}

	return domain.Decision{
		Type:                domain.DecisionScheduleConflict,
		Resolution:          domain.ResolutionAutoResolve,
		Confidence:          domain.ConfidenceMedium,
		Reasoning:           []string{"tool conflict resolved by rescheduling to an alternative window"},
		RescheduleRequested: true,
	}
}

func (e *Engine) resolveScopeChange(exc domain.ExceptionContext) domain.Decision {
	switch {
	case exc.CostImpact <= scopeChangeAutoLimit:
		return domain.Decision{
			Type:       domain.DecisionScopeChange,
			Resolution: domain.ResolutionAutoResolve,
			Confidence: domain.ConfidenceHigh,
			Reasoning:  []string{fmt.Sprintf("cost impact %.2f within auto-approval limit %.0f", exc.CostImpact, scopeChangeAutoLimit)},
			Notifications: []domain.Notification{
				{Channel: domain.ChannelEmail, Recipient: "client", Subject: "Scope change approved", Body: "A small scope change was approved automatically; the updated plan is attached."},
			},
		}
	case exc.CostImpact <= scopeChangeApprovalLimit:
		return domain.Decision{
			Type:       domain.DecisionScopeChange,
			Resolution: domain.ResolutionRequestApproval,
			Confidence: domain.ConfidenceMedium,
			Reasoning:  []string{fmt.Sprintf("cost impact %.2f requires client consent", exc.CostImpact)},
		}
	default:
		return domain.Decision{
			Type:       domain.DecisionScopeChange,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceMedium,
			Reasoning:  []string{fmt.Sprintf("cost impact %.2f exceeds approval limit %.0f, contractor review required", exc.CostImpact, scopeChangeApprovalLimit)},
		}
	}
}

func (e *Engine) resolveQualityIssue(exc domain.ExceptionContext) domain.Decision {
	if exc.Severity != "low" {
		return domain.Decision{
			Type:       domain.DecisionQualityIssue,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceMedium,
			Reasoning:  []string{fmt.Sprintf("quality issue severity %q requires contractor intervention", exc.Severity)},
		}
	}

	return domain.Decision{
		Type:       domain.DecisionQualityIssue,
		Resolution: domain.ResolutionAutoResolve,
		Confidence: domain.ConfidenceHigh,
		Reasoning:  []string{"low-severity quality issue resolved with worker guidance"},
		Notifications: []domain.Notification{
			{Channel: domain.ChannelEmail, Recipient: "worker", Subject: "Quality guidance", Body: "Please review the work and ensure it meets our quality standards."},
		},
	}
}

func (e *Engine) resolveWeatherDelay(exc domain.ExceptionContext) domain.Decision {
	if exc.DelayHours > weatherDelayAutoHours {
		return domain.Decision{
			Type:       domain.DecisionWeatherDelay,
			Resolution: domain.ResolutionEscalate,
			Confidence: domain.ConfidenceMedium,
			Reasoning:  []string{fmt.Sprintf("extended weather delay of %.1f hours requires review", exc.DelayHours)},
		}
	}

	return domain.Decision{
		Type:                domain.DecisionWeatherDelay,
		Resolution:          domain.ResolutionAutoResolve,
		Confidence:          domain.ConfidenceHigh,
		Reasoning:           []string{fmt.Sprintf("short weather delay of %.1f hours, rescheduling automatically", exc.DelayHours)},
		RescheduleRequested: true,
		Notifications: []domain.Notification{
			{Channel: domain.ChannelEmail, Recipient: "client", Subject: "Schedule update", Body: "Your job was briefly delayed by weather and has been rescheduled automatically."},
		},
	}
}
