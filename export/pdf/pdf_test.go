package pdf

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/tdewolff/canvas"

	"pagecraft/common"
	"pagecraft/export/paint"
	"pagecraft/render"
)

// blankPainter draws empty pages and fails on pages listed in broken.
type blankPainter struct {
	broken map[string]bool
}

func (p blankPainter) Canvas(page *render.Fragment, shape common.Shape) (*canvas.Canvas, *paint.Page, error) {
	if p.broken[page.ItemID] {
		return nil, nil, errors.New("broken page")
	}
	w, h := paint.PageSize(shape)
	return canvas.New(w*25.4/96, h*25.4/96), &paint.Page{Node: page, Width: w, Height: h}, nil
}

func document(ids ...string) *render.Document {
	doc := &render.Document{Title: "Doc", Shape: common.ContentTypeResume.Shape()}
	for _, id := range ids {
		doc.Pages = append(doc.Pages, &render.Fragment{Role: render.RolePage, ItemID: id})
	}
	return doc
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	n, err := Generate(context.Background(), document("a", "b", "c"), &buf, Options{Painter: blankPainter{}, Author: "me"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if n != 3 {
		t.Errorf("pages = %d, want 3", n)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("not a PDF")
	}
}

func TestGenerate_Failures(t *testing.T) {
	painter := blankPainter{broken: map[string]bool{"a": true, "c": true}}

	var failed []int
	var buf bytes.Buffer
	n, err := Generate(context.Background(), document("a", "b", "c"), &buf, Options{
		Painter:   painter,
		OnFailure: func(i int, err error) error { failed = append(failed, i); return nil },
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if n != 1 || len(failed) != 2 || failed[0] != 0 || failed[1] != 2 {
		t.Errorf("pages = %d, failed = %v", n, failed)
	}

	stop := errors.New("stop")
	_, err = Generate(context.Background(), document("b", "c"), &buf, Options{
		Painter:   painter,
		OnFailure: func(int, error) error { return stop },
	})
	if !errors.Is(err, stop) {
		t.Errorf("error = %v, want stop", err)
	}

	if _, err := Generate(context.Background(), document("a"), &buf, Options{Painter: painter}); err == nil {
		t.Errorf("expected error without failure handler")
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, document("a"), &bytes.Buffer{}, Options{Painter: blankPainter{}}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
