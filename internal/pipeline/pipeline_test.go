package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/casewiki/casewiki/internal/model"
)

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Robots.Enabled = false
	return cfg
}

const noticeHTML = `<html><body>
<h1>关于侵害用户权益行为的App通报</h1>
<p>发布时间：2024年3月15日</p>
<p>应用名称：快乐购物</p>
<p>开发者：某某网络科技有限公司</p>
<p>经工信部检测，该App在应用宝分发，存在超范围收集个人信息等违规问题。</p>
</body></html>`

func TestImporter_Import_Text(t *testing.T) {
	im := NewImporter(testConfig())

	result, err := im.Import(context.Background(), model.ImportRequest{
		Type:    model.SourceText,
		Content: "通报时间：2024年3月15日\n某App存在超范围收集个人信息的违规问题。",
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.SourceType != model.SourceText {
		t.Errorf("source type = %q, want text", result.SourceType)
	}
	if result.Case == nil {
		t.Fatal("expected a parsed case")
	}
	if result.Case.ReportDate == nil || *result.Case.ReportDate != "2024-03-15" {
		t.Errorf("report date = %v, want 2024-03-15", result.Case.ReportDate)
	}
	if result.ElapsedMS < 0 {
		t.Errorf("elapsed = %d, want >= 0", result.ElapsedMS)
	}
}

func TestImporter_Import_URL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(noticeHTML))
	}))
	defer server.Close()

	im := NewImporter(testConfig())
	result, err := im.Import(context.Background(), model.ImportRequest{
		Type:    model.SourceURL,
		Content: server.URL,
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", result.StatusCode)
	}
	if result.FinalURL != server.URL {
		t.Errorf("final URL = %q, want %q", result.FinalURL, server.URL)
	}
	if result.CacheHit {
		t.Error("first fetch should not be a cache hit")
	}
	c := result.Case
	if c.ReportDate == nil || *c.ReportDate != "2024-03-15" {
		t.Errorf("report date = %v, want 2024-03-15", c.ReportDate)
	}
	if c.AppName == nil || *c.AppName != "快乐购物" {
		t.Errorf("app name = %v, want 快乐购物", c.AppName)
	}
	if c.Department == nil || *c.Department != "工业和信息化部" {
		t.Errorf("department = %v, want 工业和信息化部", c.Department)
	}
}

func TestImporter_Import_URL_CacheHit(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(noticeHTML))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Cache.Enabled = true
	im := NewImporter(cfg)

	req := model.ImportRequest{Type: model.SourceURL, Content: server.URL}
	first, err := im.Import(context.Background(), req)
	if err != nil {
		t.Fatalf("first Import() error = %v", err)
	}
	second, err := im.Import(context.Background(), req)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}

	if hits != 1 {
		t.Errorf("server hit %d times, want 1", hits)
	}
	if first.CacheHit {
		t.Error("first import should miss the cache")
	}
	if !second.CacheHit {
		t.Error("second import should hit the cache")
	}
	if *first.Case.ReportDate != *second.Case.ReportDate {
		t.Error("cached import produced a different case")
	}
}

func TestImporter_Import_URL_RobotsDenied(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /notices/\n"))
			return
		}
		_, _ = w.Write([]byte(noticeHTML))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Robots.Enabled = true
	im := NewImporter(cfg)

	_, err := im.Import(context.Background(), model.ImportRequest{
		Type:    model.SourceURL,
		Content: server.URL + "/notices/2024-03.html",
	})
	ie, ok := AsImportError(err)
	if !ok {
		t.Fatalf("expected *ImportError, got %v", err)
	}
	if ie.Code != CodeRobotsDenied {
		t.Errorf("code = %q, want %q", ie.Code, CodeRobotsDenied)
	}
	if ie.Status != http.StatusForbidden {
		t.Errorf("status = %d, want 403", ie.Status)
	}

	// The allowed part of the site still imports
	result, err := im.Import(context.Background(), model.ImportRequest{
		Type:    model.SourceURL,
		Content: server.URL + "/public/2024-03.html",
	})
	if err != nil {
		t.Fatalf("allowed path failed: %v", err)
	}
	if result.Case == nil {
		t.Error("expected a parsed case for the allowed path")
	}
}

func TestImporter_Import_InvalidScheme(t *testing.T) {
	im := NewImporter(testConfig())

	for _, raw := range []string{"ftp://example.com/a", "file:///etc/passwd", "javascript:alert(1)"} {
		_, err := im.Import(context.Background(), model.ImportRequest{
			Type:    model.SourceURL,
			Content: raw,
		})
		ie, ok := AsImportError(err)
		if !ok {
			t.Fatalf("%s: expected *ImportError, got %v", raw, err)
		}
		if ie.Code != CodeInvalidInput {
			t.Errorf("%s: code = %q, want %q", raw, ie.Code, CodeInvalidInput)
		}
	}
}

func TestImporter_Import_UnknownType(t *testing.T) {
	im := NewImporter(testConfig())

	_, err := im.Import(context.Background(), model.ImportRequest{
		Type:    "audio",
		Content: "whatever",
	})
	ie, ok := AsImportError(err)
	if !ok {
		t.Fatalf("expected *ImportError, got %v", err)
	}
	if ie.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", ie.Status)
	}
}

func TestImporter_Import_ImagePlaceholder(t *testing.T) {
	im := NewImporter(testConfig())

	for _, typ := range []model.SourceType{model.SourceImage, model.SourcePDF} {
		result, err := im.Import(context.Background(), model.ImportRequest{
			Type:    typ,
			Content: "https://example.com/notice-scan",
		})
		if err != nil {
			t.Fatalf("%s: Import() error = %v", typ, err)
		}
		c := result.Case
		if c.Confidence != 0 {
			t.Errorf("%s: confidence = %v, want 0", typ, c.Confidence)
		}
		if len(c.Warnings) != 7 {
			t.Errorf("%s: warnings = %d, want 7 (every field missing)", typ, len(c.Warnings))
		}
		if result.SourceURL != "https://example.com/notice-scan" {
			t.Errorf("%s: source URL = %q", typ, result.SourceURL)
		}
	}
}

func TestPlaceholderFor(t *testing.T) {
	img := placeholderFor(model.SourceImage, "https://example.com/a")
	if !strings.Contains(img, "图片") || !strings.Contains(img, "https://example.com/a") {
		t.Errorf("image placeholder = %q", img)
	}
	pdf := placeholderFor(model.SourcePDF, "https://example.com/b")
	if !strings.Contains(pdf, "PDF") {
		t.Errorf("pdf placeholder = %q", pdf)
	}
}
