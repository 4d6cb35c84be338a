package paint

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"go.uber.org/zap"

	"pagecraft/common"
	"pagecraft/render"
	"pagecraft/utils/images"
)

// Painter draws laid out pages. It is safe for concurrent use.
type Painter struct {
	fonts   *fontSet
	baseDir string
	log     *zap.Logger
}

// NewPainter loads fonts. Relative image references of backgrounds are
// resolved against baseDir.
func NewPainter(baseDir string, log *zap.Logger) (*Painter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &Painter{fonts: fs, baseDir: baseDir, log: log.Named("paint")}, nil
}

// Canvas lays out and draws rendered page. Error is returned when page
// references resources which could not be loaded.
func (p *Painter) Canvas(page *render.Fragment, shape common.Shape) (*canvas.Canvas, *Page, error) {
	pg := p.Layout(page, shape)
	c := canvas.New(pg.Width*mmPerPx, pg.Height*mmPerPx)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	if err := p.drawBackground(ctx, pg); err != nil {
		return nil, nil, err
	}
	for _, b := range pg.Boxes {
		p.drawBox(ctx, b)
	}
	return c, pg, nil
}

func (p *Painter) drawBackground(ctx *canvas.Context, pg *Page) error {
	w, h := pg.Width*mmPerPx, pg.Height*mmPerPx
	fillRect(ctx, 0, 0, w, h, canvas.White)

	bg := pg.Background
	switch bg.Kind {
	case render.BackgroundKindColor:
		c, a, ok := cssColor(bg.Value)
		if !ok {
			p.log.Debug("Ignoring unsupported background color", zap.String("value", bg.Value))
			return nil
		}
		fillRect(ctx, 0, 0, w, h, withAlpha(c, a))
	case render.BackgroundKindGradient:
		g, ok := bg.Gradient()
		if !ok {
			p.log.Debug("Ignoring unsupported background gradient", zap.String("value", bg.Value))
			return nil
		}
		img := GradientImage(g, int(math.Ceil(pg.Width/4)), int(math.Ceil(pg.Height/4)))
		drawImage(ctx, img, w)
	case render.BackgroundKindImage:
		img, err := images.Load(bg.Value, p.baseDir)
		if err != nil {
			return fmt.Errorf("unable to load background image %q: %w", bg.Value, err)
		}
		drawImage(ctx, images.Fill(img, int(pg.Width), int(pg.Height)), w)
	}
	return nil
}

func (p *Painter) drawBox(ctx *canvas.Context, b *Box) {
	x, y := b.X*mmPerPx, b.Y*mmPerPx
	if b.Fill != "" {
		if c, a, ok := cssColor(b.Fill); ok {
			fillRect(ctx, x, y, b.W*mmPerPx, b.H*mmPerPx, withAlpha(c, a))
		}
	}
	if len(b.Lines) == 0 {
		return
	}

	col := withAlpha(b.Color, b.Alpha)
	face := p.fonts.face(b.Size, col, b.Bold, b.Italic)
	align, anchor := canvas.Left, x
	switch b.Align {
	case "center":
		align, anchor = canvas.Center, x+b.W*mmPerPx/2
	case "right":
		align, anchor = canvas.Right, x+b.W*mmPerPx
	}

	lineH := b.LineHeight * mmPerPx
	top := y
	if b.Fill != "" {
		// text is centered in filled boxes
		top += (b.H*mmPerPx - lineH*float64(len(b.Lines))) / 2
	}
	m := face.Metrics()
	for _, l := range b.Lines {
		if l != "" {
			// half leading above the glyphs as in CSS
			baseline := top + (lineH-m.LineHeight)/2 + m.Ascent
			ctx.DrawText(anchor, baseline, canvas.NewTextLine(face, l, align))
		}
		top += lineH
	}
}

func fillRect(ctx *canvas.Context, x, y, w, h float64, col color.Color) {
	ctx.SetFillColor(col)
	ctx.SetStrokeColor(color.RGBA{})
	ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

// drawImage stretches image to page width keeping its aspect ratio.
func drawImage(ctx *canvas.Context, img image.Image, widthMM float64) {
	dpmm := float64(img.Bounds().Dx()) / widthMM
	if dpmm <= 0 {
		return
	}
	ctx.DrawImage(0, 0, img, canvas.DPMM(dpmm))
}
