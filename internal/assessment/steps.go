package assessment

import (
	"context"
	"fmt"

	"ayurveda-ai/internal/dosha"
	"ayurveda-ai/internal/safety"
)

// Generator is the model boundary used by the vision and guidance steps.
// We define it here to decouple from the specific model client.
type Generator interface {
	GenerateGuidance(ctx context.Context, instruction string) (string, error)
	AnalyzeTongue(ctx context.Context, imageBase64 string) (string, error)
}

// visionStep performs the tongue Darshan examination and records which
// dosha the report points at. The indicator later biases constitution
// selection by a fixed bonus.
type visionStep struct {
	gen Generator
}

func (visionStep) Name() string { return "vision" }

func (s visionStep) Run(ctx context.Context, rec *Record) error {
	if rec.TongueImageBase64 == "" {
		return nil
	}
	analysis, err := s.gen.AnalyzeTongue(ctx, rec.TongueImageBase64)
	if err != nil {
		return err
	}
	rec.TongueAnalysis = analysis
	rec.VisualIndicator, rec.VisionScores = dosha.VisualIndicator(analysis)
	return nil
}

// symptomStep scores the combined symptom/disease text per dosha and
// selects the primary and secondary constitution, applying the visual
// bonus when a tongue examination ran first.
type symptomStep struct{}

func (symptomStep) Name() string { return "symptom" }

func (symptomStep) Run(_ context.Context, rec *Record) error {
	scores := dosha.Score(rec.Symptoms + " " + rec.Disease)
	primary, secondary, adjusted := dosha.Select(scores, rec.VisualIndicator)
	rec.Scores = adjusted
	rec.Primary = primary
	rec.Secondary = secondary
	rec.SymptomAnalysis = fmt.Sprintf("Primary imbalance: %s (score: %d)",
		primary, adjusted[primary])
	return nil
}

// doshaStep maps the primary constitution to its treatment principles.
type doshaStep struct{}

func (doshaStep) Name() string { return "dosha" }

func (doshaStep) Run(_ context.Context, rec *Record) error {
	rec.Treatment = dosha.TreatmentFor(rec.Primary)
	rec.Constitution = string(rec.Primary) + "-dominant"
	return nil
}

// guidanceStep asks the fine-tuned model for the clinical assessment.
type guidanceStep struct {
	gen Generator
}

func (guidanceStep) Name() string { return "guidance" }

func (s guidanceStep) Run(ctx context.Context, rec *Record) error {
	instruction := fmt.Sprintf(`You are an Ayurvedic clinical assistant. A patient presents with the following:

Disease: %s
Symptoms: %s
Age Group: %s
Gender: %s
Medical History: %s
Current Medications: %s
Stress Levels: %s
Dietary Habits: %s
Primary Dosha Imbalance: %s
Treatment Principle: %s

Provide a structured Ayurvedic assessment and treatment plan.`,
		rec.Disease, rec.Symptoms, rec.AgeGroup, rec.Gender,
		rec.MedicalHistory, rec.CurrentMedications, rec.StressLevels,
		rec.DietaryHabits, rec.Primary, rec.Treatment.Principle)

	out, err := s.gen.GenerateGuidance(ctx, instruction)
	if err != nil {
		return err
	}
	rec.ModelOutput = out
	return nil
}

// safetyStep softens overconfident claims and appends the disclaimer.
type safetyStep struct{}

func (safetyStep) Name() string { return "safety" }

func (safetyStep) Run(_ context.Context, rec *Record) error {
	rec.FinalOutput = safety.Sanitize(rec.ModelOutput)
	return nil
}
