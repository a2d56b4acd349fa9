package scoring_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"crewline.app/dispatch/internal/domain"
	"crewline.app/dispatch/internal/engine/scoring"
)

var _ = Describe("SkillMatch", func() {
	It("returns the neutral default when no skills are required", func() {
		Expect(scoring.SkillMatch(nil, []string{"plumbing"})).To(Equal(8.0))
		Expect(scoring.SkillMatch([]string{}, nil)).To(Equal(8.0))
	})

	It("scores full coverage as 10", func() {
		score := scoring.SkillMatch([]string{"plumbing", "tiling"}, []string{"tiling", "plumbing", "painting"})
		Expect(score).To(Equal(10.0))
	})

	It("scores partial coverage proportionally", func() {
		score := scoring.SkillMatch([]string{"plumbing", "tiling"}, []string{"plumbing"})
		Expect(score).To(Equal(5.0))
	})

	It("matches case-insensitively", func() {
		score := scoring.SkillMatch([]string{"Plumbing"}, []string{"PLUMBING"})
		Expect(score).To(Equal(10.0))
	})

	It("matches substrings in both directions", func() {
		Expect(scoring.SkillMatch([]string{"plumbing"}, []string{"emergency_plumbing"})).To(Equal(10.0))
		Expect(scoring.SkillMatch([]string{"emergency_plumbing"}, []string{"plumbing"})).To(Equal(10.0))
	})

	It("counts each required skill at most once", func() {
		score := scoring.SkillMatch([]string{"plumbing"}, []string{"plumbing", "emergency_plumbing", "pipe_plumbing"})
		Expect(score).To(Equal(10.0))
	})

	It("never exceeds 10", func() {
		inputs := [][2][]string{
			{{"a", "b", "c"}, {"a", "b", "c", "d"}},
			{{"x"}, {"x", "xx", "xxx"}},
			{nil, {"anything"}},
		}
		for _, in := range inputs {
			score := scoring.SkillMatch(in[0], in[1])
			Expect(score).To(BeNumerically(">=", 0))
			Expect(score).To(BeNumerically("<=", 10))
		}
	})

	It("scores zero when nothing matches", func() {
		Expect(scoring.SkillMatch([]string{"roofing"}, []string{"gardening"})).To(Equal(0.0))
	})
})

var _ = Describe("JobTypeExperience", func() {
	history := []domain.JobOutcome{
		{JobType: "plumbing", Outcome: "success"},
		{JobType: "plumbing", Outcome: "failed"},
		{JobType: "garden", Outcome: "success"},
	}

	It("returns the neutral score when the job type is empty", func() {
		Expect(scoring.JobTypeExperience("", history)).To(Equal(5.0))
	})

	It("returns the low-but-nonzero floor with no matching history", func() {
		Expect(scoring.JobTypeExperience("roofing", history)).To(Equal(3.0))
		Expect(scoring.JobTypeExperience("roofing", nil)).To(Equal(3.0))
	})

	It("awards 2 points per matching job plus the success bonus", func() {
		// 2 plumbing jobs -> 4 points, 1/2 success -> +1 bonus
		Expect(scoring.JobTypeExperience("plumbing", history)).To(Equal(5.0))
	})

	It("caps the volume component at 8", func() {
		var long []domain.JobOutcome
		for range 10 {
			long = append(long, domain.JobOutcome{JobType: "garden", Outcome: "failed"})
		}
		Expect(scoring.JobTypeExperience("garden", long)).To(Equal(8.0))
	})

	It("reaches 10 only with heavy, fully successful history", func() {
		var long []domain.JobOutcome
		for range 10 {
			long = append(long, domain.JobOutcome{JobType: "garden", Outcome: "success"})
		}
		Expect(scoring.JobTypeExperience("garden", long)).To(Equal(10.0))
	})

	It("matches the job type case-insensitively", func() {
		Expect(scoring.JobTypeExperience("PLUMBING", history)).To(Equal(5.0))
	})
})

var _ = Describe("WeatherSuitable", func() {
	It("is suitable when no forecast data exists", func() {
		Expect(scoring.WeatherSuitable(nil)).To(BeTrue())
	})

	It("rejects high rain probability", func() {
		Expect(scoring.WeatherSuitable(&domain.ForecastDay{RainProbability: 50})).To(BeFalse())
		Expect(scoring.WeatherSuitable(&domain.ForecastDay{RainProbability: 49.9})).To(BeTrue())
	})

	It("rejects high wind", func() {
		Expect(scoring.WeatherSuitable(&domain.ForecastDay{WindSpeed: 40})).To(BeFalse())
		Expect(scoring.WeatherSuitable(&domain.ForecastDay{WindSpeed: 39.9})).To(BeTrue())
	})

	It("accepts calm conditions", func() {
		Expect(scoring.WeatherSuitable(&domain.ForecastDay{RainProbability: 20, WindSpeed: 15})).To(BeTrue())
	})
})
