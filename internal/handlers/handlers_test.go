package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/ats-scorer/internal/config"
	"alfredoptarigan/ats-scorer/internal/models"
	"alfredoptarigan/ats-scorer/internal/services"
	"alfredoptarigan/ats-scorer/internal/testutil"
)

type testApp struct {
	app       *fiber.App
	docRepo   *testutil.DocumentRepo
	scoreRepo *testutil.ScoreRepo
	worker    *queueRecorder
}

// queueRecorder records enqueued jobs instead of running them.
type queueRecorder struct {
	services.Worker
	enqueued []uuid.UUID
}

func (q *queueRecorder) EnqueueJob(id uuid.UUID) {
	q.enqueued = append(q.enqueued, id)
}

func newTestApp(t *testing.T, maxFileSize int64) *testApp {
	t.Helper()

	docRepo := testutil.NewDocumentRepo()
	scoreRepo := testutil.NewScoreRepo()
	storage := services.NewStorageService(t.TempDir())
	calculator := services.NewScoreCalculator(config.DefaultCriteria(), services.ScoreOptions{})
	ats := services.NewATSService(scoreRepo, docRepo, storage, services.NewTextExtractor(), calculator)
	worker := &queueRecorder{}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, Handlers{
		Upload:   NewUploadHandler(docRepo, storage, maxFileSize),
		Score:    NewScoreHandler(ats, maxFileSize),
		Evaluate: NewEvaluationHandler(scoreRepo, docRepo, worker),
		Result:   NewResultHandler(scoreRepo),
		Criteria: NewCriteriaHandler(calculator),
	})

	return &testApp{app: app, docRepo: docRepo, scoreRepo: scoreRepo, worker: worker}
}

func multipartRequest(t *testing.T, path, field, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	} else if err := mw.WriteField("other", "value"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func TestHandleScore_EmptyDOCX(t *testing.T) {
	ta := newTestApp(t, 1<<20)

	status, body := do(t, ta.app, multipartRequest(t, "/api/v1/score", ResumeField, "cv.docx", testutil.DOCX(t)))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var resp models.ScoreResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Format != "docx" || resp.Score.Total != 25 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Score.FormattingScore != 20 || resp.Score.FileTypeScore != 5 {
		t.Fatalf("unexpected sub-scores %+v", resp.Score)
	}
}

func TestHandleScore_Errors(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		filename string
		data     []byte
		want     int
	}{
		{"missing file part", "", "", nil, fiber.StatusBadRequest},
		{"unsupported format", ResumeField, "cv.txt", []byte("python"), fiber.StatusBadRequest},
		{"malformed pdf", ResumeField, "cv.pdf", []byte("not a pdf"), fiber.StatusUnprocessableEntity},
		{"too large", ResumeField, "cv.docx", bytes.Repeat([]byte("x"), 2048), fiber.StatusBadRequest},
	}

	ta := newTestApp(t, 1024)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, ta.app, multipartRequest(t, "/api/v1/score", tt.field, tt.filename, tt.data))
			if status != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, status, body)
			}
			if !strings.Contains(string(body), `"error"`) {
				t.Fatalf("expected an error body, got %s", body)
			}
		})
	}
}

func TestResumeField_MissingOrEmpty(t *testing.T) {
	ta := newTestApp(t, 1<<20)

	for _, path := range []string{"/api/v1/score", "/api/v1/upload"} {
		t.Run(path, func(t *testing.T) {
			status, body := do(t, ta.app, multipartRequest(t, path, ResumeField, "", nil))
			if status != fiber.StatusBadRequest || !strings.Contains(string(body), "No selected file") {
				t.Fatalf("expected 400 No selected file, got %d: %s", status, body)
			}

			status, body = do(t, ta.app, multipartRequest(t, path, "", "", nil))
			if status != fiber.StatusBadRequest || !strings.Contains(string(body), "No file part") {
				t.Fatalf("expected 400 No file part, got %d: %s", status, body)
			}
		})
	}

	if ta.docRepo.Len() != 0 {
		t.Fatalf("no document record should be created")
	}
}

func TestUploadEvaluateResultFlow(t *testing.T) {
	ta := newTestApp(t, 1<<20)

	status, body := do(t, ta.app, multipartRequest(t, "/api/v1/upload", ResumeField, "Jane.DOCX", testutil.DOCX(t, "Experience")))
	if status != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", status, body)
	}

	var upload struct {
		Document models.UploadResponse `json:"document"`
	}
	if err := json.Unmarshal(body, &upload); err != nil {
		t.Fatalf("decode upload: %v", err)
	}
	if upload.Document.Format != "docx" || upload.Document.OriginalName != "Jane.DOCX" {
		t.Fatalf("unexpected upload response %+v", upload.Document)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate",
		strings.NewReader(`{"document_id":"`+upload.Document.ID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	status, body = do(t, ta.app, req)
	if status != fiber.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", status, body)
	}

	var evaluate models.EvaluateResponse
	if err := json.Unmarshal(body, &evaluate); err != nil {
		t.Fatalf("decode evaluate: %v", err)
	}
	if len(ta.worker.enqueued) != 1 || ta.worker.enqueued[0].String() != evaluate.ID {
		t.Fatalf("expected job %s enqueued, got %v", evaluate.ID, ta.worker.enqueued)
	}

	status, body = do(t, ta.app, httptest.NewRequest(http.MethodGet, "/api/v1/result/"+evaluate.ID, nil))
	if status != fiber.StatusOK || !strings.Contains(string(body), `"status":"queued"`) {
		t.Fatalf("expected queued result, got %d: %s", status, body)
	}
}

func TestHandleUpload_RejectsUnsupportedFormat(t *testing.T) {
	ta := newTestApp(t, 1<<20)

	status, _ := do(t, ta.app, multipartRequest(t, "/api/v1/upload", ResumeField, "cv.rtf", []byte("{\\rtf1}")))
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if ta.docRepo.Len() != 0 {
		t.Fatalf("no document record should be created")
	}
}

func TestHandleEvaluate_Validation(t *testing.T) {
	ta := newTestApp(t, 1<<20)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, fiber.StatusBadRequest},
		{"missing id", `{}`, fiber.StatusBadRequest},
		{"bad uuid", `{"document_id":"nope"}`, fiber.StatusBadRequest},
		{"unknown document", `{"document_id":"` + uuid.NewString() + `"}`, fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/evaluate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if status, body := do(t, ta.app, req); status != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, status, body)
			}
		})
	}
}

func TestHandleGetResult(t *testing.T) {
	ta := newTestApp(t, 1<<20)

	total, keyword, tabs := 53.0, 10.0, 2
	matched, sections, message := models.EncodeMatches([]string{"python", "sql, nosql"}), "", "malformed document"
	completed := models.Score{
		ID: uuid.New(), DocumentID: uuid.New(), Status: models.StatusCompleted, CreatedAt: time.Now(),
		Total: &total, KeywordScore: &keyword, MatchedKeywords: &matched, MatchedSections: &sections, TabCount: &tabs,
	}
	failed := models.Score{ID: uuid.New(), DocumentID: uuid.New(), Status: models.StatusFailed, ErrorMessage: &message}
	_ = ta.scoreRepo.Create(&completed)
	_ = ta.scoreRepo.Create(&failed)

	status, body := do(t, ta.app, httptest.NewRequest(http.MethodGet, "/api/v1/result/"+completed.ID.String(), nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var result models.ResultResponse
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Result == nil || result.Result.Total != 53 || len(result.Result.MatchedKeywords) != 2 {
		t.Fatalf("unexpected result %s", body)
	}
	if result.Result.MatchedKeywords[1] != "sql, nosql" {
		t.Fatalf("expected the comma entry intact, got %q", result.Result.MatchedKeywords)
	}
	if len(result.Result.MatchedSections) != 0 || result.Result.TabCount != 2 {
		t.Fatalf("unexpected result %s", body)
	}

	status, body = do(t, ta.app, httptest.NewRequest(http.MethodGet, "/api/v1/result/"+failed.ID.String(), nil))
	if status != fiber.StatusOK || !strings.Contains(string(body), "malformed document") {
		t.Fatalf("expected failure message, got %d: %s", status, body)
	}

	if status, _ := do(t, ta.app, httptest.NewRequest(http.MethodGet, "/api/v1/result/not-a-uuid", nil)); status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if status, _ := do(t, ta.app, httptest.NewRequest(http.MethodGet, "/api/v1/result/"+uuid.NewString(), nil)); status != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestHandleGetCriteria(t *testing.T) {
	ta := newTestApp(t, 1<<20)

	status, body := do(t, ta.app, httptest.NewRequest(http.MethodGet, "/api/v1/criteria", nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var resp models.CriteriaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode criteria: %v", err)
	}
	if len(resp.Keywords) != 8 || len(resp.Sections) != 5 || resp.Weights["keyword"] != 40 {
		t.Fatalf("unexpected criteria %s", body)
	}
}

func TestRegisterRoutes_SkipsNilHandlers(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, Handlers{})

	if status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)); status != fiber.StatusOK {
		t.Fatalf("expected health to be served, got %d", status)
	}
	if status, _ := do(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/score", nil)); status != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unregistered route, got %d", status)
	}
}
