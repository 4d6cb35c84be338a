package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/config"
	"pagecraft/project"
)

func newExporter(t *testing.T, tweak func(*config.ExportConfig), opts ...Option) *Exporter {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if tweak != nil {
		tweak(&cfg.Export)
	}
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	return NewExporter(&cfg.Export, logger, opts...)
}

func fixedClock() time.Time {
	return time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
}

// q3Deck is title slide with filled title followed by untouched content
// slide.
func q3Deck(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.New(catalog.Default(), "Q3 Deck", common.ContentTypePresentation, "clean-white", project.WithClock(fixedClock))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	title, err := p.AddItem("title-slide")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateContent(title.ID, "title", common.Text("Q3 Results")); err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddItem("content-slide"); err != nil {
		t.Fatal(err)
	}
	return p
}

func breakFirstItem(t *testing.T, p *project.Project) {
	t.Helper()
	first, _ := p.ItemAt(0)
	if err := p.UpdateStyleOverride(first.ID, "background", "image:missing.png"); err != nil {
		t.Fatal(err)
	}
}

func TestExport_HTMLDeck(t *testing.T) {
	e := newExporter(t, nil)
	var buf bytes.Buffer
	res, err := e.Export(context.Background(), q3Deck(t), common.ExportFmtHtml, &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Pages != 2 || res.Shape != common.ExportShapeDeck || res.Bytes != int64(buf.Len()) {
		t.Errorf("result = %+v", res)
	}

	out := buf.String()
	title := strings.Index(out, "Q3 Results")
	body := strings.Index(out, "Body text...")
	if title < 0 || body < 0 || title > body {
		t.Fatalf("items missing or out of order: title at %d, body at %d", title, body)
	}
	if strings.Count(out, `class="pc-page`) != 2 {
		t.Errorf("expected two pages in output")
	}
	if !strings.Contains(out, "pc-deck") || !strings.Contains(out, "break-after: page") {
		t.Errorf("deck output has no page breaks")
	}
	if !strings.Contains(out, "pc-placeholder") {
		t.Errorf("placeholder content not marked")
	}
}

const hostile = `<script>alert("x")</script>`

// hostileDeck carries markup in content and project name.
func hostileDeck(t *testing.T) *project.Project {
	t.Helper()
	p := q3Deck(t)
	first, _ := p.ItemAt(0)
	if err := p.UpdateContent(first.ID, "title", common.Text(hostile)); err != nil {
		t.Fatal(err)
	}
	if err := p.Rename("</title><b>"); err != nil {
		t.Fatal(err)
	}
	return p
}

func zipEntry(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	rc, err := zr.Open(name)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer rc.Close()
	entry, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	return string(entry)
}

func TestExport_EscapesContent(t *testing.T) {
	tests := []struct {
		format  common.ExportFmt
		extract func(t *testing.T, data []byte) string
		escaped string
	}{
		{common.ExportFmtHtml, nil, "&lt;script&gt;alert("},
		{common.ExportFmtPptx, func(t *testing.T, data []byte) string {
			return zipEntry(t, data, "ppt/slides/slide1.xml") + zipEntry(t, data, "docProps/core.xml")
		}, "&lt;script&gt;alert("},
		{common.ExportFmtJson, nil, `\u003cscript\u003ealert(`},
		// glyphs are drawn from font, no markup survives in content streams
		{common.ExportFmtPdf, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			res, err := newExporter(t, nil).Export(context.Background(), hostileDeck(t), tt.format, &buf)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if len(res.Failures) != 0 {
				t.Fatalf("failures = %v", res.Failures)
			}
			out := buf.String()
			if tt.extract != nil {
				out = tt.extract(t, buf.Bytes())
			}
			if strings.Contains(out, "<script>alert") || strings.Contains(out, "<b>") {
				t.Errorf("markup from content leaked into output:\n%s", out)
			}
			if tt.escaped != "" && !strings.Contains(out, tt.escaped) {
				t.Errorf("escaped content %q missing", tt.escaped)
			}
		})
	}
}

func TestExport_JSONKeepsMarkupAsText(t *testing.T) {
	var buf bytes.Buffer
	if _, err := newExporter(t, nil).Export(context.Background(), hostileDeck(t), common.ExportFmtJson, &buf); err != nil {
		t.Fatal(err)
	}
	back, err := project.Load(&buf, catalog.Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	first, _ := back.ItemAt(0)
	if got := first.Content["title"].Text; got != hostile {
		t.Errorf("title = %q, want %q", got, hostile)
	}
}

func TestExport_HTMLShapes(t *testing.T) {
	tests := []struct {
		ct     common.ContentType
		layout string
		shape  common.ExportShape
		class  string
	}{
		{common.ContentTypeWebsite, "hero-section", common.ExportShapeScroll, "pc-scroll"},
		{common.ContentTypePost, "instagram-square", common.ExportShapeSnapshot, "pc-snapshot"},
		{common.ContentTypeResume, "resume-header", common.ExportShapeDeck, "pc-deck"},
	}
	for _, tt := range tests {
		t.Run(tt.ct.String(), func(t *testing.T) {
			p, err := project.New(catalog.Default(), "Shape", tt.ct, "clean-white")
			if err != nil {
				t.Fatal(err)
			}
			for range 2 {
				if _, err := p.AddItem(tt.layout); err != nil {
					t.Fatal(err)
				}
			}
			var buf bytes.Buffer
			res, err := newExporter(t, nil).Export(context.Background(), p, common.ExportFmtHtml, &buf)
			if err != nil {
				t.Fatal(err)
			}
			if res.Shape != tt.shape {
				t.Errorf("shape = %s, want %s", res.Shape, tt.shape)
			}
			if !strings.Contains(buf.String(), tt.class) {
				t.Errorf("output has no %s class", tt.class)
			}
			wantPages := 2
			if tt.shape == common.ExportShapeSnapshot {
				wantPages = 1
			}
			if got := strings.Count(buf.String(), `<section class="pc-page`); got != wantPages || res.Pages != wantPages {
				t.Errorf("pages = %d (result %d), want %d", got, res.Pages, wantPages)
			}
		})
	}
}

func TestExport_PDF(t *testing.T) {
	var buf bytes.Buffer
	res, err := newExporter(t, nil).Export(context.Background(), q3Deck(t), common.ExportFmtPdf, &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Pages != 2 || len(res.Failures) != 0 {
		t.Errorf("result = %+v", res)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output is not PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestExport_ItemFailureIsReported(t *testing.T) {
	p := q3Deck(t)
	breakFirstItem(t, p)

	var buf bytes.Buffer
	res, err := newExporter(t, nil).Export(context.Background(), p, common.ExportFmtPdf, &buf)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Pages != 1 || len(res.Failures) != 1 {
		t.Fatalf("pages = %d failures = %d, want 1 and 1", res.Pages, len(res.Failures))
	}
	first, _ := p.ItemAt(0)
	f := res.Failures[0]
	if f.Index != 0 || f.ItemID != first.ID || f.Format != common.ExportFmtPdf {
		t.Errorf("failure = %+v", f)
	}
	if res.Err() == nil || !strings.Contains(res.Err().Error(), "missing.png") {
		t.Errorf("Err() = %v", res.Err())
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("remaining page was not written")
	}
}

func TestExport_AbortOnError(t *testing.T) {
	p := q3Deck(t)
	breakFirstItem(t, p)

	e := newExporter(t, func(cfg *config.ExportConfig) { cfg.AbortOnError = true })
	for _, format := range []common.ExportFmt{common.ExportFmtHtml, common.ExportFmtPdf, common.ExportFmtPptx} {
		_, err := e.Export(context.Background(), p, format, io.Discard)
		var ee *ExportError
		if !errors.As(err, &ee) {
			t.Fatalf("%s: error = %v, want ExportError", format, err)
		}
		if ee.Index != 0 || ee.Format != format {
			t.Errorf("%s: error = %+v", format, ee)
		}
	}
}

func TestExport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newExporter(t, nil).Export(ctx, q3Deck(t), common.ExportFmtHtml, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestExport_Unsupported(t *testing.T) {
	p, err := project.New(catalog.Default(), "Site", common.ContentTypeWebsite, "clean-white")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.AddItem("hero-section"); err != nil {
		t.Fatal(err)
	}
	_, err = newExporter(t, nil).Export(context.Background(), p, common.ExportFmtPptx, io.Discard)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}
}

func TestExport_EmptyProject(t *testing.T) {
	p, err := project.New(catalog.Default(), "Empty", common.ContentTypePresentation, "clean-white")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newExporter(t, nil).Export(context.Background(), p, common.ExportFmtPdf, io.Discard); err == nil {
		t.Errorf("expected error for empty project")
	}
	// project document is still exportable
	if _, err := newExporter(t, nil).Export(context.Background(), p, common.ExportFmtJson, io.Discard); err != nil {
		t.Errorf("json export error = %v", err)
	}
}

func TestExport_PPTX(t *testing.T) {
	for _, fix := range []bool{false, true} {
		e := newExporter(t, func(cfg *config.ExportConfig) { cfg.FixZip = fix })
		var buf bytes.Buffer
		res, err := e.Export(context.Background(), q3Deck(t), common.ExportFmtPptx, &buf)
		if err != nil {
			t.Fatalf("fix=%v: Export() error = %v", fix, err)
		}
		if res.Pages != 2 {
			t.Errorf("fix=%v: pages = %d", fix, res.Pages)
		}

		zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		if err != nil {
			t.Fatalf("fix=%v: not a zip: %v", fix, err)
		}
		entries := make(map[string]*zip.File)
		for _, f := range zr.File {
			entries[f.Name] = f
			if fix && f.Flags&0x8 != 0 {
				t.Errorf("entry %s still uses data descriptor", f.Name)
			}
		}
		for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "docProps/core.xml", "ppt/presentation.xml",
			"ppt/slides/slide1.xml", "ppt/slides/slide2.xml", "ppt/theme/theme1.xml"} {
			if entries[name] == nil {
				t.Errorf("fix=%v: missing %s", fix, name)
			}
		}
		if f := entries["ppt/slides/slide2.xml"]; f != nil {
			rc, err := f.Open()
			if err != nil {
				t.Fatal(err)
			}
			data, _ := io.ReadAll(rc)
			rc.Close()
			if !strings.Contains(string(data), "Body text...") {
				t.Errorf("second slide lacks placeholder text")
			}
		}
	}
}

func TestExport_Raster(t *testing.T) {
	tests := []struct {
		format common.ExportFmt
		scale  float64
		kind   string
		w, h   int
	}{
		{common.ExportFmtPng, 1, "png", 1280, 720},
		{common.ExportFmtJpeg, 0.5, "jpeg", 640, 360},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			e := newExporter(t, func(cfg *config.ExportConfig) { cfg.Raster.Scale = tt.scale })
			var buf bytes.Buffer
			res, err := e.Export(context.Background(), q3Deck(t), tt.format, &buf)
			if err != nil {
				t.Fatalf("Export() error = %v", err)
			}
			if res.Pages != 1 || res.Shape != common.ExportShapeSnapshot {
				t.Errorf("result = %+v", res)
			}
			cfg, kind, err := image.DecodeConfig(&buf)
			if err != nil {
				t.Fatalf("DecodeConfig() error = %v", err)
			}
			if kind != tt.kind || abs(cfg.Width-tt.w) > 1 || abs(cfg.Height-tt.h) > 1 {
				t.Errorf("image = %s %dx%d, want %s %dx%d", kind, cfg.Width, cfg.Height, tt.kind, tt.w, tt.h)
			}
		})
	}
}

func TestExport_JSON(t *testing.T) {
	p := q3Deck(t)
	var buf bytes.Buffer
	res, err := newExporter(t, nil).Export(context.Background(), p, common.ExportFmtJson, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Pages != 2 {
		t.Errorf("pages = %d", res.Pages)
	}
	back, err := project.Load(&buf, catalog.Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !back.Equal(p) {
		t.Errorf("reloaded project differs")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
