package intake_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"crewline.app/dispatch/common/llm"
	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/intake"
)

type mockLLM struct {
	ChatFunc func(ctx context.Context, req llm.Request, result any) (*llm.Response, error)
}

func (m *mockLLM) Chat(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
	return m.ChatFunc(ctx, req, result)
}

func (m *mockLLM) Model() string { return "mock" }

var _ = Describe("Analyzer", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("heuristic extraction", func() {
		var analyzer intake.Analyzer

		BeforeEach(func() {
			analyzer = intake.New()
		})

		It("rejects empty descriptions", func() {
			_, err := analyzer.Analyze(ctx, "   ", "Amsterdam")
			Expect(err).To(MatchError(ContainSubstring("empty job description")))
		})

		It("detects plumbing emergencies", func() {
			req, err := analyzer.Analyze(ctx, "Emergency! A pipe burst and the basement is flooding", "Amsterdam")

			Expect(err).NotTo(HaveOccurred())
			Expect(req.JobType).To(Equal("plumbing"))
			Expect(req.Urgency).To(Equal(domain.UrgencyEmergency))
			Expect(req.Location).To(Equal("Amsterdam"))
			Expect(req.Validate()).To(Succeed())
		})

		It("marks roofing work weather dependent", func() {
			req, err := analyzer.Analyze(ctx, "A few shingles came loose after the storm", "Rotterdam")

			Expect(err).NotTo(HaveOccurred())
			Expect(req.JobType).To(Equal("roofing"))
			Expect(req.WeatherDependent).To(BeTrue())
		})

		It("classifies multi-trade descriptions the same way on every call", func() {
			description := "A pipe burst is flooding the basement, also please paint the fence today"

			first, err := analyzer.Analyze(ctx, description, "Amsterdam")
			Expect(err).NotTo(HaveOccurred())
			Expect(first.JobType).To(Equal("plumbing"))
			Expect(first.Urgency).To(Equal(domain.UrgencyEmergency))

			for i := 0; i < 50; i++ {
				req, err := analyzer.Analyze(ctx, description, "Amsterdam")
				Expect(err).NotTo(HaveOccurred())
				Expect(req).To(Equal(first))
			}
		})

		It("resolves mixed urgency keywords to the most severe", func() {
			req, err := analyzer.Analyze(ctx, "Sparking outlet, please come today", "Amsterdam")

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Urgency).To(Equal(domain.UrgencyEmergency))
		})

		It("defaults vague descriptions to a medium general job", func() {
			req, err := analyzer.Analyze(ctx, "Something is off in the hallway, please take a look", "Utrecht")

			Expect(err).NotTo(HaveOccurred())
			Expect(req.JobType).To(Equal("general"))
			Expect(req.Urgency).To(Equal(domain.UrgencyMedium))
			Expect(req.ComplexityScore).To(Equal(5))
			Expect(req.EstimatedDuration).To(Equal(2.0))
		})
	})

	Context("LLM extraction", func() {
		It("uses the structured response when the model succeeds", func() {
			client := &mockLLM{
				ChatFunc: func(_ context.Context, req llm.Request, result any) (*llm.Response, error) {
					Expect(req.SchemaName).To(Equal("job_requirements"))
					Expect(*req.Temperature).To(BeZero())
					payload := `{
						"job_type": "Electrical",
						"urgency": "high",
						"complexity_score": 7,
						"estimated_duration": 3.5,
						"weather_dependent": false,
						"required_skills": ["electrical", "certified electrician"],
						"required_tools": ["multimeter"]
					}`
					Expect(json.Unmarshal([]byte(payload), result)).To(Succeed())
					return &llm.Response{}, nil
				},
			}

			analyzer := intake.New(intake.WithLLM(client, 1024))
			req, err := analyzer.Analyze(ctx, "Half the outlets upstairs stopped working", "Leiden")

			Expect(err).NotTo(HaveOccurred())
			Expect(req.JobType).To(Equal("electrical"))
			Expect(req.Urgency).To(Equal(domain.UrgencyHigh))
			Expect(req.ComplexityScore).To(Equal(7))
			Expect(req.RequiredTools).To(ContainElement("multimeter"))
		})

		It("clamps out-of-range model output", func() {
			client := &mockLLM{
				ChatFunc: func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
					payload := `{"job_type": "plumbing", "urgency": "rush", "complexity_score": 14, "estimated_duration": -1}`
					Expect(json.Unmarshal([]byte(payload), result)).To(Succeed())
					return &llm.Response{}, nil
				},
			}

			analyzer := intake.New(intake.WithLLM(client, 1024))
			req, err := analyzer.Analyze(ctx, "leaking faucet", "Leiden")

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Urgency).To(Equal(domain.UrgencyMedium))
			Expect(req.ComplexityScore).To(Equal(10))
			Expect(req.EstimatedDuration).To(Equal(2.0))
		})

		It("falls back to heuristics when the model errors", func() {
			client := &mockLLM{
				ChatFunc: func(context.Context, llm.Request, any) (*llm.Response, error) {
					return nil, errors.New("upstream unavailable")
				},
			}

			analyzer := intake.New(intake.WithLLM(client, 1024))
			req, err := analyzer.Analyze(ctx, "The kitchen drain is clogged", "Leiden")

			Expect(err).NotTo(HaveOccurred())
			Expect(req.JobType).To(Equal("plumbing"))
		})
	})
})
