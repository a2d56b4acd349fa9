// Package intake turns free-form client job descriptions into structured
// requirements. Extraction prefers the LLM's structured output; when no LLM
// is configured or the call fails, a keyword heuristic produces a usable
// fallback so intake never hard-depends on an external model.
package intake

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"crewline.app/dispatch/common/llm"
	"crewline.app/dispatch/internal/domain"
)

const (
	defaultComplexity = 5
	defaultDuration   = 2.0
)

// Analyzer extracts JobRequirements from a description.
type Analyzer interface {
	Analyze(ctx context.Context, description, location string) (domain.JobRequirements, error)
}

type analyzer struct {
	client    llm.Client // nil means heuristics only
	maxTokens int
}

type Option func(*analyzer)

func WithLLM(client llm.Client, maxTokens int) Option {
	return func(a *analyzer) {
		a.client = client
		a.maxTokens = maxTokens
	}
}

func New(opts ...Option) Analyzer {
	a := &analyzer{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// extraction is the LLM's structured response schema.
type extraction struct {
	JobType           string   `json:"job_type" jsonschema_description:"Trade category, e.g. plumbing, electrical, roofing"`
	Urgency           string   `json:"urgency" jsonschema:"enum=emergency,enum=high,enum=medium,enum=low"`
	ComplexityScore   int      `json:"complexity_score" jsonschema:"minimum=1,maximum=10"`
	EstimatedDuration float64  `json:"estimated_duration" jsonschema_description:"Estimated duration in hours"`
	WeatherDependent  bool     `json:"weather_dependent"`
	RequiredSkills    []string `json:"required_skills"`
	RequiredTools     []string `json:"required_tools"`
}

const systemPrompt = `You analyze home-service job descriptions for a field-service dispatcher.
Extract the trade category, urgency, a 1-10 complexity score, estimated duration
in hours, whether the work depends on outdoor weather, and the skills and tools
needed. Be conservative: when the description is vague, prefer medium urgency,
complexity 5 and 2 hours.`

func (a *analyzer) Analyze(ctx context.Context, description, location string) (domain.JobRequirements, error) {
	if strings.TrimSpace(description) == "" {
		return domain.JobRequirements{}, fmt.Errorf("empty job description")
	}

	if a.client != nil {
		req, err := a.analyzeLLM(ctx, description, location)
		if err == nil {
			return req, nil
		}
		slog.WarnContext(ctx, "llm intake failed, falling back to heuristics", "error", err)
	}

	return a.analyzeHeuristic(description, location), nil
}

func (a *analyzer) analyzeLLM(ctx context.Context, description, location string) (domain.JobRequirements, error) {
	var result extraction
	_, err := a.client.Chat(ctx, llm.Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   description,
		SchemaName:   "job_requirements",
		Schema:       llm.GenerateSchema[extraction](),
		MaxTokens:    a.maxTokens,
		Temperature:  llm.Temp(0),
	}, &result)
	if err != nil {
		return domain.JobRequirements{}, fmt.Errorf("intake extraction: %w", err)
	}

	req := domain.JobRequirements{
		JobType:           strings.ToLower(strings.TrimSpace(result.JobType)),
		Urgency:           domain.Urgency(result.Urgency),
		ComplexityScore:   result.ComplexityScore,
		EstimatedDuration: result.EstimatedDuration,
		WeatherDependent:  result.WeatherDependent,
		RequiredSkills:    result.RequiredSkills,
		RequiredTools:     result.RequiredTools,
		Location:          location,
	}
	normalize(&req)

	if err := req.Validate(); err != nil {
		return domain.JobRequirements{}, fmt.Errorf("llm extraction invalid: %w", err)
	}
	return req, nil
}

type jobTypeRule struct {
	jobType  string
	keywords []string
}

// Evaluated in order; the first matching trade wins, so a description
// touching several trades always classifies the same way.
var jobTypeRules = []jobTypeRule{
	{"plumbing", []string{"pipe", "leak", "drain", "faucet", "toilet", "water heater", "plumb"}},
	{"electrical", []string{"outlet", "wiring", "breaker", "light", "electric", "fuse", "socket"}},
	{"roofing", []string{"roof", "gutter", "shingle", "chimney"}},
	{"hvac", []string{"heating", "furnace", "air conditioning", "boiler", "radiator", "thermostat"}},
	{"painting", []string{"paint", "wall", "ceiling"}},
	{"carpentry", []string{"door", "cabinet", "shelf", "deck", "fence", "wood"}},
}

// Weather-dependent trades: the work happens outdoors.
var weatherDependentTypes = map[string]bool{
	"roofing": true,
}

type urgencyRule struct {
	urgency  domain.Urgency
	keywords []string
}

// Ordered by severity: a description matching both emergency and high
// keywords resolves to emergency.
var urgencyRules = []urgencyRule{
	{domain.UrgencyEmergency, []string{"emergency", "flooding", "burst", "sparking", "gas leak", "immediately"}},
	{domain.UrgencyHigh, []string{"urgent", "asap", "as soon as possible", "today"}},
	{domain.UrgencyLow, []string{"whenever", "no rush", "sometime", "eventually"}},
}

func (a *analyzer) analyzeHeuristic(description, location string) domain.JobRequirements {
	text := strings.ToLower(description)

	req := domain.JobRequirements{
		JobType:           "general",
		Urgency:           domain.UrgencyMedium,
		ComplexityScore:   defaultComplexity,
		EstimatedDuration: defaultDuration,
		Location:          location,
	}

	for _, rule := range jobTypeRules {
		if containsAny(text, rule.keywords) {
			req.JobType = rule.jobType
			req.RequiredSkills = []string{rule.jobType}
			break
		}
	}

	for _, rule := range urgencyRules {
		if containsAny(text, rule.keywords) {
			req.Urgency = rule.urgency
			break
		}
	}

	if weatherDependentTypes[req.JobType] || strings.Contains(text, "outdoor") || strings.Contains(text, "outside") {
		req.WeatherDependent = true
	}

	return req
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// normalize clamps out-of-range LLM output into valid bounds instead of
// rejecting it outright.
func normalize(req *domain.JobRequirements) {
	switch req.Urgency {
	case domain.UrgencyEmergency, domain.UrgencyHigh, domain.UrgencyMedium, domain.UrgencyLow:
	default:
		req.Urgency = domain.UrgencyMedium
	}
	if req.ComplexityScore < 1 {
		req.ComplexityScore = 1
	}
	if req.ComplexityScore > 10 {
		req.ComplexityScore = 10
	}
	if req.EstimatedDuration <= 0 {
		req.EstimatedDuration = defaultDuration
	}
	if req.JobType == "" {
		req.JobType = "general"
	}
}
