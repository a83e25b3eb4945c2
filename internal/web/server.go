package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ayurveda-ai/internal/assessment"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server renders the patient-facing intake form and assessment result
// pages. The API surface lives in internal/assessment; this is the thin
// HTML layer on top of the same service.
type Server struct {
	Svc       assessment.Service
	Templates *template.Template
}

// NewServer parses the embedded HTML templates, so the binary renders
// pages regardless of the directory it was launched from.
func NewServer(svc assessment.Service) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{Svc: svc, Templates: tmpl}, nil
}

type resultData struct {
	Record     *assessment.Record
	Assessment string
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.Templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// HandleAssessForm runs the text pipeline for a form submission and
// renders the result page.
func (s *Server) HandleAssessForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := assessment.Request{
		Disease:            r.FormValue("disease"),
		Symptoms:           r.FormValue("symptoms"),
		AgeGroup:           r.FormValue("age_group"),
		Gender:             r.FormValue("gender"),
		MedicalHistory:     r.FormValue("medical_history"),
		CurrentMedications: r.FormValue("current_medications"),
		StressLevels:       r.FormValue("stress_levels"),
		DietaryHabits:      r.FormValue("dietary_habits"),
	}
	if req.Disease == "" || req.Symptoms == "" {
		http.Error(w, "disease and symptoms are required", http.StatusBadRequest)
		return
	}

	rec, err := s.Svc.Assess(r.Context(), req)
	if err != nil {
		http.Error(w, "Assessment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := resultData{Record: rec, Assessment: rec.AssessmentText()}
	if err := s.Templates.ExecuteTemplate(w, "result.html", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func RegisterRoutes(r chi.Router, s *Server) {
	r.Get("/", s.HandleIndex)
	r.Post("/assess", s.HandleAssessForm)
}
