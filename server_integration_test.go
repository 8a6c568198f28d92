package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"anpr/pkg/anpr"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
)

type fixedDetector struct{}

func (fixedDetector) DetectBest(image.Image) (anpr.Detection, bool, error) {
	return anpr.Detection{}, false, nil
}

type fixedRecognizer struct {
	text string
	conf float64
}

func (r fixedRecognizer) Recognize(image.Image) ([]anpr.TextCandidate, error) {
	if r.text == "" {
		return nil, nil
	}
	return []anpr.TextCandidate{{Text: r.text, Confidence: r.conf}}, nil
}

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T, rec anpr.Recognizer) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	initDB()
	tmp := t.TempDir()
	_ = os.Setenv("UPLOAD_BASE", tmp)
	pipeline = anpr.NewWithModels(anpr.DefaultConfig(), fixedDetector{}, rec)
	r := gin.Default()
	setupRoutes(r)
	return r
}

func pngUpload(t *testing.T, violation string) (*bytes.Buffer, string) {
	img := imaging.New(320, 160, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	var encoded bytes.Buffer
	if err := imaging.Encode(&encoded, img, imaging.PNG); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", "car.png")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(encoded.Bytes()); err != nil {
		t.Fatalf("write png: %v", err)
	}
	if violation != "" {
		_ = mw.WriteField("violation_type", violation)
	}
	_ = mw.Close()
	return body, mw.FormDataContentType()
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t, fixedRecognizer{text: " ka01-ab 1234 ", conf: 0.9})

	// 1. Register user
	regBody, _ := json.Marshal(map[string]string{"username": "user1", "password": "pass12"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login
	loginBody, _ := json.Marshal(map[string]string{"username": "user1", "password": "pass12"})
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginOut struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &loginOut); err != nil || loginOut.Token == "" {
		t.Fatalf("login token missing: %v body=%s", err, resp.Body.String())
	}

	// 3. Process an image with a violation
	body, ct := pngUpload(t, "Signal Jump")
	resp = performRequest(r, http.MethodPost, "/anpr", body, loginOut.Token, ct)
	if resp.Code != 200 {
		t.Fatalf("anpr failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var out struct {
		Plate   string `json:"plate"`
		Fine    int    `json:"fine"`
		IsFined bool   `json:"is_fined"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if out.Plate != "KA01AB1234" {
		t.Fatalf("expected canonical plate KA01AB1234 got %q", out.Plate)
	}
	if !out.IsFined || out.Fine != 1000 {
		t.Fatalf("expected Signal Jump fine 1000 got %+v", out)
	}

	// 4. Fines listing requires auth
	resp = performRequest(r, http.MethodGet, "/fines", nil, "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated fines list must be rejected, got %d", resp.Code)
	}
	resp = performRequest(r, http.MethodGet, "/fines", nil, loginOut.Token, "")
	if resp.Code != 200 {
		t.Fatalf("fines list failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestNoTextSkipsLogging(t *testing.T) {
	r := setupTestServer(t, fixedRecognizer{})

	regBody, _ := json.Marshal(map[string]string{"username": "user2", "password": "pass12"})
	resp := performRequest(r, http.MethodPost, "/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d", resp.Code)
	}
	loginBody, _ := json.Marshal(map[string]string{"username": "user2", "password": "pass12"})
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "", "application/json")
	var loginOut struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &loginOut)

	body, ct := pngUpload(t, "")
	resp = performRequest(r, http.MethodPost, "/anpr", body, loginOut.Token, ct)
	if resp.Code != 200 {
		t.Fatalf("anpr failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var out struct {
		Plate     string `json:"plate"`
		Violation string `json:"violation"`
		EmailSent bool   `json:"email_sent"`
		LogID     *uint  `json:"log_id"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if out.Plate != "" || out.LogID != nil || out.EmailSent {
		t.Fatalf("empty reading must skip logging and email: %+v", out)
	}
	if out.Violation != anpr.DefaultViolation {
		t.Fatalf("missing category must default, got %q", out.Violation)
	}
}
