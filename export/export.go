// Package export assembles rendered projects into output documents. Every
// format consumes the same render.Document, none of them resolves styles
// on its own.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"pagecraft/common"
	"pagecraft/config"
	"pagecraft/export/html"
	"pagecraft/export/paint"
	"pagecraft/export/pdf"
	"pagecraft/export/pptx"
	"pagecraft/export/raster"
	"pagecraft/misc"
	"pagecraft/project"
	"pagecraft/render"
)

// Result describes finished export.
type Result struct {
	Format common.ExportFmt
	Shape  common.ExportShape
	// set by ExportFile
	Path  string
	Bytes int64
	// number of items in output
	Pages int
	// items which could not be exported, batch continues past them unless
	// abort_on_error is set
	Failures []*ExportError
}

// Err combines item failures into single error, nil when there are none.
func (r *Result) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

// Exporter produces output documents from projects.
type Exporter struct {
	cfg       *config.ExportConfig
	renderer  *render.Renderer
	log       *zap.Logger
	baseDir   string
	overwrite bool
}

type Option func(*Exporter)

// WithBaseDir sets directory relative image references are resolved
// against.
func WithBaseDir(dir string) Option {
	return func(e *Exporter) { e.baseDir = dir }
}

// WithOverwrite allows ExportFile to replace existing files.
func WithOverwrite(overwrite bool) Option {
	return func(e *Exporter) { e.overwrite = overwrite }
}

// NewExporter creates exporter, nil config means defaults.
func NewExporter(cfg *config.ExportConfig, log *zap.Logger, opts ...Option) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		cfg = &config.ExportConfig{Raster: config.RasterConfig{Scale: 1, JPEGQuality: 90}}
	}
	e := &Exporter{cfg: cfg, log: log.Named("export")}
	for _, opt := range opts {
		opt(e)
	}
	e.renderer = render.NewRenderer(e.log)
	return e
}

// Render renders project the way exporters see it.
func (e *Exporter) Render(p *project.Project) *render.Document {
	return e.renderer.RenderProject(p, render.Options{})
}

// Export writes project in requested format. Website projects become
// scrolling documents, presentations and resumes paginated decks and
// posts single item snapshots. Raster formats always capture the focused
// item. Item failures are reported in Result, returned error means
// nothing usable was written.
func (e *Exporter) Export(ctx context.Context, p *project.Project, format common.ExportFmt, w io.Writer) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Len() == 0 && format != common.ExportFmtJson {
		return nil, exportError(format, fmt.Errorf("project %q has no items", p.Name()))
	}

	res := &Result{Format: format, Shape: p.Shape().Assembly}
	if !format.Supports(res.Shape) {
		return nil, exportError(format, fmt.Errorf("%w: %s cannot be assembled as %s", ErrUnsupported, p.ContentType(), format))
	}
	doc := e.Render(p)

	onFailure := func(index int, err error) error {
		fe := &ExportError{Format: format, Index: index, Err: err}
		if index >= 0 && index < len(doc.Pages) {
			fe.ItemID = doc.Pages[index].ItemID
		}
		e.log.Warn("Unable to export item", zap.Stringer("format", format), zap.Int("index", index), zap.String("item", fe.ItemID), zap.Error(err))
		if e.cfg.AbortOnError {
			return fe
		}
		res.Failures = append(res.Failures, fe)
		return nil
	}

	cw := &countingWriter{w: w}
	var err error
	switch format {
	case common.ExportFmtHtml:
		res.Pages, err = e.writeHTML(ctx, doc, res.Shape, cw, onFailure)
	case common.ExportFmtPptx:
		res.Pages, err = e.writePPTX(ctx, doc, cw, onFailure)
	case common.ExportFmtPdf:
		res.Pages, err = e.writePDF(ctx, doc, cw, onFailure)
	case common.ExportFmtPng, common.ExportFmtJpeg:
		// snapshot of the focused item whatever the project shape is
		res.Shape = common.ExportShapeSnapshot
		res.Pages, err = e.writeRaster(ctx, doc, format, cw)
	case common.ExportFmtJson:
		res.Pages, err = p.Len(), p.Save(cw)
	default:
		err = fmt.Errorf("%w: format %q", ErrUnsupported, format)
	}
	res.Bytes = cw.n
	if err != nil {
		return nil, exportError(format, err)
	}
	e.log.Debug("Export finished", zap.Stringer("format", format), zap.Stringer("shape", res.Shape),
		zap.Int("pages", res.Pages), zap.Int("failures", len(res.Failures)), zap.Int64("bytes", res.Bytes))
	return res, nil
}

func (e *Exporter) writeHTML(ctx context.Context, doc *render.Document, shape common.ExportShape, w io.Writer, onFailure func(int, error) error) (int, error) {
	mode := html.ModeScroll
	switch shape {
	case common.ExportShapeDeck:
		mode = html.ModeDeck
	case common.ExportShapeSnapshot:
		// report failures against position in the project
		current, report := doc.Current, onFailure
		onFailure = func(index int, err error) error { return report(current+index, err) }
		mode, doc = html.ModeSnapshot, doc.Snapshot()
	}
	return html.Generate(ctx, doc, w, html.Options{
		Mode:      mode,
		BaseDir:   e.baseDir,
		Generator: misc.GetAppName() + " " + misc.GetVersion(),
		OnFailure: onFailure,
		Log:       e.log,
	})
}

func (e *Exporter) painter() (*paint.Painter, error) {
	p, err := paint.NewPainter(e.baseDir, e.log)
	if err != nil {
		return nil, fmt.Errorf("fonts are not available: %w", err)
	}
	return p, nil
}

func (e *Exporter) writePPTX(ctx context.Context, doc *render.Document, w io.Writer, onFailure func(int, error) error) (int, error) {
	painter, err := e.painter()
	if err != nil {
		return 0, err
	}
	return pptx.Generate(ctx, doc, w, pptx.Options{
		Painter:   painter,
		BaseDir:   e.baseDir,
		FixZip:    e.cfg.FixZip,
		Creator:   misc.GetAppName(),
		OnFailure: onFailure,
		Log:       e.log,
	})
}

func (e *Exporter) writePDF(ctx context.Context, doc *render.Document, w io.Writer, onFailure func(int, error) error) (int, error) {
	painter, err := e.painter()
	if err != nil {
		return 0, err
	}
	return pdf.Generate(ctx, doc, w, pdf.Options{
		Painter:   painter,
		Author:    e.cfg.PDF.Author,
		Subject:   e.cfg.PDF.Subject,
		Keywords:  strings.Join(e.cfg.PDF.Keywords, ", "),
		Creator:   misc.GetAppName() + " " + misc.GetVersion(),
		OnFailure: onFailure,
	})
}

func (e *Exporter) writeRaster(ctx context.Context, doc *render.Document, format common.ExportFmt, w io.Writer) (int, error) {
	painter, err := e.painter()
	if err != nil {
		return 0, err
	}
	index := doc.Current
	if index < 0 || index >= len(doc.Pages) {
		return 0, fmt.Errorf("no item in focus")
	}
	page := doc.Pages[index]
	opts := raster.Options{
		Painter:     painter,
		Scale:       e.cfg.Raster.Scale,
		Compression: e.cfg.Raster.PNGCompression.Level(),
		JPEGQuality: e.cfg.Raster.JPEGQuality,
		JPEG:        format == common.ExportFmtJpeg,
	}
	// encode fully before writing so failed capture leaves destination
	// untouched
	var buf bytes.Buffer
	if err := raster.Generate(ctx, page, doc.Shape, &buf, opts); err != nil {
		return 0, &ExportError{Format: format, Index: index, ItemID: page.ItemID, Err: err}
	}
	_, err = buf.WriteTo(w)
	return 1, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
