// Package pdf materializes rendered documents as PDF, one page per item.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"pagecraft/common"
	"pagecraft/export/paint"
	"pagecraft/render"
)

// Painter draws single rendered page.
type Painter interface {
	Canvas(page *render.Fragment, shape common.Shape) (*canvas.Canvas, *paint.Page, error)
}

// Options for PDF generation.
type Options struct {
	Painter  Painter
	Author   string
	Subject  string
	Keywords string
	Creator  string
	// OnFailure is called for every page which could not be drawn, page is
	// skipped when it returns nil, generation stops otherwise.
	OnFailure func(index int, err error) error
}

// Generate writes PDF document and returns number of pages in it. Page
// sizes follow content type, content driven pages get their laid out
// height.
func Generate(ctx context.Context, doc *render.Document, w io.Writer, opts Options) (int, error) {
	if opts.Painter == nil {
		return 0, errors.New("no painter")
	}

	var writer *pdf.PDF
	pages := 0
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		c, _, err := opts.Painter.Canvas(page, doc.Shape)
		if err != nil {
			if opts.OnFailure == nil {
				return pages, err
			}
			if ferr := opts.OnFailure(i, err); ferr != nil {
				return pages, ferr
			}
			continue
		}
		if writer == nil {
			writer = pdf.New(w, c.W, c.H, nil)
			writer.SetInfo(doc.Title, opts.Subject, opts.Keywords, opts.Author, opts.Creator)
		} else {
			writer.NewPage(c.W, c.H)
		}
		c.RenderTo(writer)
		pages++
	}

	if writer == nil {
		return 0, errors.New("no pages could be drawn")
	}
	if err := writer.Close(); err != nil {
		return pages, fmt.Errorf("unable to write pdf: %w", err)
	}
	return pages, nil
}
