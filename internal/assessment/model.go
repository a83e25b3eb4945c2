package assessment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ayurveda-ai/internal/dosha"
)

// Request carries the patient intake fields. All fields are free text;
// absent optional fields receive the same defaults the intake form uses.
type Request struct {
	Disease            string `json:"disease"`
	Symptoms           string `json:"symptoms"`
	AgeGroup           string `json:"age_group"`
	Gender             string `json:"gender"`
	MedicalHistory     string `json:"medical_history"`
	CurrentMedications string `json:"current_medications"`
	StressLevels       string `json:"stress_levels"`
	DietaryHabits      string `json:"dietary_habits"`
}

func (r *Request) applyDefaults() {
	if r.AgeGroup == "" {
		r.AgeGroup = "Adult (20-40)"
	}
	if r.Gender == "" {
		r.Gender = "Male"
	}
	if r.MedicalHistory == "" {
		r.MedicalHistory = "None"
	}
	if r.CurrentMedications == "" {
		r.CurrentMedications = "None"
	}
	if r.StressLevels == "" {
		r.StressLevels = "Moderate"
	}
	if r.DietaryHabits == "" {
		r.DietaryHabits = "Not specified"
	}
}

// Record is the patient state threaded through the pipeline. Steps only
// ever add fields; nothing is removed. It lives for the duration of one
// request and is optionally written to the audit store afterwards.
type Record struct {
	ID uuid.UUID `json:"id" db:"id"`

	Request

	// Vision step output (tongue flow only).
	TongueImageBase64 string       `json:"-"`
	TongueAnalysis    string       `json:"tongue_analysis,omitempty"`
	VisualIndicator   dosha.Dosha  `json:"visual_dosha_indicator,omitempty"`
	VisionScores      dosha.Scores `json:"dosha_scores_vision,omitempty"`

	// Symptom scoring and constitution selection.
	Scores          dosha.Scores `json:"dosha_scores"`
	Primary         dosha.Dosha  `json:"primary_dosha"`
	Secondary       dosha.Dosha  `json:"secondary_dosha"`
	SymptomAnalysis string       `json:"symptom_analysis"`

	// Treatment mapping.
	Treatment    dosha.Treatment `json:"dosha_treatment"`
	Constitution string          `json:"constitution"`

	// Model output, raw and sanitized.
	ModelOutput string `json:"-"`
	FinalOutput string `json:"final_output"`

	Pipeline  string    `json:"pipeline"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AssessmentText assembles the patient-facing response body: the agent
// analysis header followed by the sanitized model output.
func (r *Record) AssessmentText() string {
	var b strings.Builder
	b.WriteString("AGENT ANALYSIS:\n")
	fmt.Fprintf(&b, "  Dosha Scores     : Vata=%d Pitta=%d Kapha=%d\n",
		r.Scores[dosha.Vata], r.Scores[dosha.Pitta], r.Scores[dosha.Kapha])
	fmt.Fprintf(&b, "  Primary Imbalance: %s\n", r.Primary)
	fmt.Fprintf(&b, "  Secondary        : %s\n", r.Secondary)
	fmt.Fprintf(&b, "  Treatment Principle: %s\n", r.Treatment.Principle)
	fmt.Fprintf(&b, "  Suggested Herbs  : %s\n", r.Treatment.Herbs)
	b.WriteString("---\n\n")
	b.WriteString(r.FinalOutput)
	return b.String()
}
