package assessment

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(gen Generator) http.Handler {
	svc := newTestService(gen, nil)
	h := NewHandler(svc, "medgemma-4b-it-ft")
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, h)
	})
	return r
}

func TestHandleHealth(t *testing.T) {
	router := newTestRouter(&fakeGenerator{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, "medgemma-4b-it-ft", body["model"])
	assert.NotEmpty(t, body["pipeline"])
	assert.Equal(t, "self-hosted", body["deployment"])
}

func TestHandleAssess(t *testing.T) {
	router := newTestRouter(&fakeGenerator{guidance: "Warm foods. This will cure your condition."})

	payload := `{"disease":"Arthritis","symptoms":"dry skin, joint pain, constipation, insomnia"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/assess", strings.NewReader(payload))
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp AssessmentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "symptom -> dosha -> guidance -> safety", resp.Pipeline)
	assert.Contains(t, resp.Assessment, "Primary Imbalance: Vata")
	assert.Contains(t, resp.Assessment, "This will [may help with] your condition")
	assert.Contains(t, resp.Assessment, "SAFETY NOTICE")
}

func TestHandleAssessInvalidBody(t *testing.T) {
	router := newTestRouter(&fakeGenerator{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/assess", strings.NewReader("{not json")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleAssessGenerationFailure(t *testing.T) {
	router := newTestRouter(&fakeGenerator{guidanceErr: errors.New("model unavailable")})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/assess", strings.NewReader(`{"disease":"Cough","symptoms":"dry cough"}`))
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "model unavailable")
}

func TestHandleTongue(t *testing.T) {
	gen := &fakeGenerator{
		guidance:       "ok",
		tongueAnalysis: "Kapha coating observed. Kapha dominant.",
	}
	router := newTestRouter(gen)

	body, _ := json.Marshal(TongueRequest{ImageBase64: "aGVsbG8="})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/tongue", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp AssessmentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "vision -> symptom -> dosha -> guidance -> safety", resp.Pipeline)
}

func TestHandleTongueRejectsBadBase64(t *testing.T) {
	router := newTestRouter(&fakeGenerator{})

	body, _ := json.Marshal(TongueRequest{ImageBase64: "not base64!!!"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("POST", "/api/tongue", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleGetAssessmentInvalidID(t *testing.T) {
	router := newTestRouter(&fakeGenerator{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/assessments/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleListAssessmentsStoreDisabled(t *testing.T) {
	router := newTestRouter(&fakeGenerator{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/assessments", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "assessment store disabled")
}
