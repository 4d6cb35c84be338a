// Package pptx materializes rendered documents as PowerPoint presentations.
// Slides are positioned from the same page layout PDF and raster exports
// use.
package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"pagecraft/export/paint"
	"pagecraft/render"
)

// slide width of 16:9 layout, height follows content type aspect
const slideWidthEMU = 9144000

// Options for PPTX generation.
type Options struct {
	Painter *paint.Painter
	// directory to resolve relative image references against
	BaseDir string
	// FixZip rewrites archive without data descriptors for picky readers.
	FixZip  bool
	Creator string
	// OnFailure is called for every slide which could not be produced,
	// slide is skipped when it returns nil, generation stops otherwise.
	OnFailure func(index int, err error) error
	Log       *zap.Logger
	// for reproducible output in tests
	Now func() time.Time
}

type media struct {
	name string
	data []byte
}

type slide struct {
	doc   *etree.Document
	media []media
}

// Generate writes presentation and returns number of slides in it.
func Generate(ctx context.Context, doc *render.Document, w io.Writer, opts Options) (int, error) {
	if opts.Painter == nil {
		return 0, errors.New("no painter")
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	g := newGeometry(doc)
	slides := make([]*slide, 0, len(doc.Pages))
	for i, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		s, err := buildSlide(opts.Painter.Layout(page, doc.Shape), g, len(slides)+1, opts)
		if err != nil {
			if opts.OnFailure == nil {
				return 0, err
			}
			if ferr := opts.OnFailure(i, err); ferr != nil {
				return 0, ferr
			}
			continue
		}
		slides = append(slides, s)
	}
	if len(slides) == 0 {
		return 0, errors.New("no slides could be produced")
	}

	var buf bytes.Buffer
	if err := writePackage(&buf, doc, g, slides, opts); err != nil {
		return 0, err
	}
	if opts.FixZip {
		if err := copyZipWithoutDataDescriptors(buf.Bytes(), w); err != nil {
			return 0, err
		}
		return len(slides), nil
	}
	if _, err := buf.WriteTo(w); err != nil {
		return 0, err
	}
	return len(slides), nil
}

// geometry converts CSS pixels of the page into slide units.
type geometry struct {
	width, height int64
	emuPerPx      float64
}

func newGeometry(doc *render.Document) geometry {
	w, h := paint.PageSize(doc.Shape)
	g := geometry{width: slideWidthEMU, emuPerPx: slideWidthEMU / w}
	g.height = int64(math.Round(h * g.emuPerPx))
	return g
}

func (g geometry) emu(px float64) int64 {
	return int64(math.Round(px * g.emuPerPx))
}

// hundredths of a point
func (g geometry) centipoints(px float64) int64 {
	return int64(math.Round(px * g.emuPerPx / 12700 * 100))
}

func writePackage(out io.Writer, doc *render.Document, g geometry, slides []*slide, opts Options) error {
	zw := zip.NewWriter(out)

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes(slides)},
		{"_rels/.rels", rootRels()},
		{"docProps/core.xml", coreProps(doc, opts.Creator, opts.Now())},
		{"docProps/app.xml", appProps(len(slides), opts.Creator)},
		{"ppt/presentation.xml", presentation(g, len(slides))},
		{"ppt/_rels/presentation.xml.rels", presentationRels(len(slides))},
		{"ppt/presProps.xml", presProps()},
		{"ppt/slideMasters/slideMaster1.xml", slideMaster()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayout()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels()},
		{"ppt/theme/theme1.xml", theme(doc)},
	}
	for _, p := range parts {
		if err := writeXMLToZip(zw, p.name, p.doc); err != nil {
			return fmt.Errorf("unable to write %s: %w", p.name, err)
		}
	}

	for i, s := range slides {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := writeXMLToZip(zw, name, s.doc); err != nil {
			return fmt.Errorf("unable to write %s: %w", name, err)
		}
		rels := fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1)
		if err := writeXMLToZip(zw, rels, slideRels(s.media)); err != nil {
			return fmt.Errorf("unable to write %s: %w", rels, err)
		}
		for _, m := range s.media {
			if err := writeDataToZip(zw, "ppt/media/"+m.name, m.data); err != nil {
				return fmt.Errorf("unable to write media %s: %w", m.name, err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	return nil
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func copyZipWithoutDataDescriptors(data []byte, to io.Writer) error {
	r, err := fixzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("unable to read archive: %w", err)
	}

	w := fixzip.NewWriter(to)
	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write archive entry %s: %w", file.Name, err)
		}
	}
	return w.Close()
}
