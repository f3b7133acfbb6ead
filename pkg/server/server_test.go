package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/dataset"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/predict"
	"github.com/mohamedsilima53-droid/Tanzania-qol-predictor/pkg/trainer"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	table := dataset.Generate(1500, 42)
	cfg := trainer.DefaultConfig()
	cfg.Epochs = 100
	if _, err := trainer.TrainAndSave(table, cfg, dir); err != nil {
		t.Fatalf("train: %v", err)
	}
	p, err := predict.New(dir)
	if err != nil {
		t.Fatalf("load predictor: %v", err)
	}
	return New(p)
}

func validInput() map[string]any {
	return map[string]any{
		"age":                     30.0,
		"region":                  "Arusha",
		"urban_rural":             "Urban",
		"education_level":         "Secondary",
		"employment_status":       "Formal Employment",
		"monthly_income_tzs":      900000.0,
		"family_size":             4.0,
		"distance_to_hospital_km": 3.0,
		"distance_to_school_km":   1.0,
		"number_of_rooms":         3.0,
		"housing_type":            "Burnt Bricks",
		"access_to_clean_water":   "Yes",
		"health_insurance":        "Yes",
		"electricity_access":      "Yes",
	}
}

func postJSON(t *testing.T, s *Server, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestFormPageRendersOptions(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Dar es Salaam", "Burnt Bricks", "Formal Employment"} {
		if !strings.Contains(body, want) {
			t.Fatalf("form is missing the %q option", want)
		}
	}
}

func TestPredictJSON(t *testing.T) {
	s := newTestServer(t)
	w := postJSON(t, s, validInput())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var res predict.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of [0,100]: %v", res.Score)
	}
	if res.Category == "" {
		t.Fatal("response is missing the category")
	}
}

func TestPredictJSONRejectsOutOfRangeAge(t *testing.T) {
	s := newTestServer(t)
	in := validInput()
	in["age"] = -3.0
	w := postJSON(t, s, in)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for negative age, got %d", w.Code)
	}
}

func TestPredictJSONRejectsUnknownRegion(t *testing.T) {
	s := newTestServer(t)
	in := validInput()
	in["region"] = "Zanzibar"
	w := postJSON(t, s, in)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422 for unknown region, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Zanzibar") {
		t.Fatal("error should identify the unrecognized value")
	}
}

func TestPredictJSONRejectsBadBinaryField(t *testing.T) {
	s := newTestServer(t)
	in := validInput()
	in["access_to_clean_water"] = "maybe"
	w := postJSON(t, s, in)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for %q clean water value, got %d", "maybe", w.Code)
	}
	if !strings.Contains(w.Body.String(), "access_to_clean_water") {
		t.Fatal("error should identify the offending field")
	}
}

func TestPredictJSONRejectsMissingBinaryField(t *testing.T) {
	s := newTestServer(t)
	in := validInput()
	delete(in, "electricity_access")
	w := postJSON(t, s, in)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing electricity access, got %d", w.Code)
	}
}

func TestPredictJSONRejectsMissingField(t *testing.T) {
	s := newTestServer(t)
	in := validInput()
	delete(in, "region")
	w := postJSON(t, s, in)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing region, got %d", w.Code)
	}
}

func TestPredictFormRendersResult(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{}
	for k, v := range validInput() {
		if val, ok := v.(string); ok {
			form.Set(k, val)
		}
	}
	form.Set("age", "30")
	form.Set("monthly_income_tzs", "900000")
	form.Set("family_size", "4")
	form.Set("distance_to_hospital_km", "3")
	form.Set("distance_to_school_km", "1")
	form.Set("number_of_rooms", "3")

	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "Your Quality of Life Score") {
		t.Fatal("result page is missing the score section")
	}
	if !strings.Contains(body, "Arusha") {
		t.Fatal("result page should echo the inputs")
	}
}

func TestModelInfoEndpoint(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/model", nil)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var meta struct {
		ModelType string
		RunID     string
	}
	if err := json.Unmarshal(w.Body.Bytes(), &meta); err != nil {
		t.Fatalf("unmarshal metadata: %v", err)
	}
	if meta.ModelType == "" || meta.RunID == "" {
		t.Fatal("metadata endpoint should expose the model type and run ID")
	}
}
