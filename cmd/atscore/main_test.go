package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alfredoptarigan/ats-scorer/internal/testutil"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRun_TextReport(t *testing.T) {
	path := writeFixture(t, "full.docx", testutil.DOCX(t,
		"Experience", "Education", "Skills", "Projects", "Certifications",
		"- Python, Java, HTML, CSS, JavaScript, SQL",
		"- Machine learning and data analysis",
		"Download: resume.docx",
	))

	var out bytes.Buffer
	if code := run([]string{path}, &out); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out.String(), "ATS score:   100.00") {
		t.Fatalf("expected a perfect score, got:\n%s", out.String())
	}
}

func TestRun_JSONWithCriteriaFile(t *testing.T) {
	criteria := writeFixture(t, "criteria.yaml", []byte("keywords: [golang]\nsections: [summary]\n"))
	path := writeFixture(t, "cv.docx", testutil.DOCX(t, "Summary", "Golang"))

	var out bytes.Buffer
	if code := run([]string{"-json", "-criteria", criteria, path}, &out); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var line struct {
		Format string `json:"format"`
		Report struct {
			Total float64 `json:"total"`
		} `json:"report"`
	}
	if err := json.Unmarshal(out.Bytes(), &line); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	// 40 + 20 + 20 + 0 + 5
	if line.Format != "docx" || line.Report.Total != 85 {
		t.Fatalf("unexpected output %s", out.String())
	}
}

func TestRun_Failures(t *testing.T) {
	var out bytes.Buffer
	if code := run(nil, &out); code != 2 {
		t.Fatalf("expected usage exit 2, got %d", code)
	}

	bad := writeFixture(t, "broken.pdf", []byte("nope"))
	good := writeFixture(t, "ok.docx", testutil.DOCX(t))
	if code := run([]string{bad, good, "missing.docx"}, &out); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(out.String(), "ok.docx") {
		t.Fatalf("good files must still be reported, got:\n%s", out.String())
	}
}
