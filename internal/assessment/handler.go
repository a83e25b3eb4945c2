package assessment

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type Handler struct {
	svc       Service
	modelName string
}

func NewHandler(svc Service, modelName string) *Handler {
	return &Handler{svc: svc, modelName: modelName}
}

// TongueRequest carries a base64-encoded tongue photograph plus the
// subset of intake fields the multimodal flow accepts.
type TongueRequest struct {
	ImageBase64 string `json:"image_base64"`
	Disease     string `json:"disease"`
	Symptoms    string `json:"symptoms"`
	AgeGroup    string `json:"age_group"`
	Gender      string `json:"gender"`
}

// AssessmentResponse is returned by both assessment endpoints.
type AssessmentResponse struct {
	Success    bool   `json:"success"`
	Assessment string `json:"assessment"`
	Pipeline   string `json:"pipeline"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":     "online",
		"model":      h.modelName,
		"pipeline":   "symptom -> dosha -> guidance -> safety",
		"deployment": "self-hosted",
	})
}

func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Assess(r.Context(), req)
	if err != nil {
		http.Error(w, "Assessment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AssessmentResponse{
		Success:    true,
		Assessment: rec.AssessmentText(),
		Pipeline:   rec.Pipeline,
	})
}

func (h *Handler) HandleTongue(w http.ResponseWriter, r *http.Request) {
	var req TongueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if _, err := base64.StdEncoding.DecodeString(req.ImageBase64); err != nil {
		http.Error(w, "Invalid image encoding", http.StatusBadRequest)
		return
	}

	intake := Request{
		Disease:  req.Disease,
		Symptoms: req.Symptoms,
		AgeGroup: req.AgeGroup,
		Gender:   req.Gender,
	}
	if intake.Disease == "" {
		intake.Disease = "General Checkup"
	}
	if intake.Symptoms == "" {
		intake.Symptoms = "Visual examination requested"
	}

	rec, err := h.svc.AssessTongue(r.Context(), req.ImageBase64, intake)
	if err != nil {
		http.Error(w, "Assessment failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AssessmentResponse{
		Success:    true,
		Assessment: rec.AssessmentText(),
		Pipeline:   rec.Pipeline,
	})
}

func (h *Handler) HandleListAssessments(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListAssessments(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

func (h *Handler) HandleGetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid assessment ID", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.GetAssessment(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rec)
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid assessment ID", http.StatusBadRequest)
		return
	}

	data, err := h.svc.BuildReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "Report generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=assessment_%s.pdf", id))
	w.Write(data)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/health", h.HandleHealth)
	r.Post("/assess", h.HandleAssess)
	r.Post("/tongue", h.HandleTongue)
	r.Get("/assessments", h.HandleListAssessments)
	r.Get("/assessments/{id}", h.HandleGetAssessment)
	r.Get("/assessments/{id}/report", h.HandleReport)
}
