// Package tools exposes project editing operations as named tools with
// structured results for automated content generators. Tools never panic
// across the boundary, every failure becomes error result.
package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/export"
	"pagecraft/project"
	"pagecraft/render"
	"pagecraft/text"
)

// length of item previews in project summary
const previewLength = 80

// Surface binds tools to catalog registry and project. It is not safe for
// concurrent use, callers serialize access the same way they do for the
// project.
type Surface struct {
	reg      *catalog.Registry
	project  *project.Project
	exporter *export.Exporter
	splitter *text.Splitter
	persist  func(*project.Project) error
	log      *zap.Logger
}

type Option func(*Surface)

// WithPersist sets hook called after every successful mutation.
func WithPersist(fn func(*project.Project) error) Option {
	return func(s *Surface) { s.persist = fn }
}

// WithExporter sets exporter used by export_project.
func WithExporter(e *export.Exporter) Option {
	return func(s *Surface) { s.exporter = e }
}

// WithLogger sets logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Surface) { s.log = log }
}

// New creates tool surface.
func New(reg *catalog.Registry, p *project.Project, opts ...Option) *Surface {
	s := &Surface{reg: reg, project: p, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("tools")
	if s.exporter == nil {
		s.exporter = export.NewExporter(nil, s.log)
	}
	s.splitter = text.NewSplitter(p.Language(), s.log)
	return s
}

// Project returns bound project.
func (s *Surface) Project() *project.Project {
	return s.project
}

// catalog returns current registry catalog and makes sure project follows
// catalog reloads.
func (s *Surface) catalog() *catalog.Catalog {
	cat := s.reg.Catalog()
	if s.project.Catalog() != cat {
		s.project.UseCatalog(cat)
	}
	return cat
}

// guard converts panic into error result.
func (s *Surface) guard(tool string, res *Result) {
	if r := recover(); r != nil {
		s.log.Error("Tool panicked", zap.String("tool", tool), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
		*res = Result{Error: fmt.Sprintf("internal error in %s: %v", tool, r)}
	}
}

func (s *Surface) saved(tool string) {
	if s.persist == nil {
		return
	}
	if err := s.persist(s.project); err != nil {
		s.log.Warn("Unable to persist project", zap.String("tool", tool), zap.Error(err))
	}
}

func layoutInfo(l *catalog.Layout, details bool) LayoutInfo {
	info := LayoutInfo{
		ID:                      l.ID,
		Name:                    l.Name,
		Category:                l.Category,
		Subcategory:             l.Subcategory,
		Description:             l.Description,
		Slots:                   l.Slots,
		EditableStyleProperties: l.EditableStyleProperties,
		Animations:              l.Animations,
	}
	if details {
		info.Style = l.Style.String()
	}
	return info
}

// ListAvailableLayouts lists layouts, optionally filtered by category or
// content type name, together with all themes.
func (s *Surface) ListAvailableLayouts(category string) (res Result) {
	defer s.guard("get_available_components", &res)

	cat := s.catalog()
	layouts := cat.Layouts()
	if category = strings.TrimSpace(category); category != "" {
		if ct, err := common.ParseContentType(category); err == nil {
			category = ct.Shape().Category
		}
		layouts = cat.LayoutsByCategory(category)
	}

	list := LayoutList{Layouts: make([]LayoutInfo, 0, len(layouts)), TotalLayouts: len(layouts)}
	for _, l := range layouts {
		list.Layouts = append(list.Layouts, layoutInfo(l, false))
	}
	for _, t := range cat.Themes() {
		list.Themes = append(list.Themes, ThemeInfo{ID: t.ID, Name: t.Name, Colors: t.Colors})
	}
	return success(list)
}

// DescribeLayout returns full layout definition including default style.
func (s *Surface) DescribeLayout(id string) (res Result) {
	defer s.guard("get_component_details", &res)

	l, ok := s.catalog().Layout(id)
	if !ok {
		return failure(fmt.Sprintf("Layout %q not found", id), nil)
	}
	return success(layoutInfo(l, true))
}

// CreateItem appends item built from layout, fills given slots and
// optionally applies theme. Blank values keep slot placeholders. Inputs are
// checked before anything is changed.
func (s *Surface) CreateItem(layoutID string, content common.Content, themeID string) (res Result) {
	defer s.guard("create_page", &res)

	cat := s.catalog()
	l, ok := cat.Layout(layoutID)
	if !ok {
		return failure(fmt.Sprintf("Layout %q not found", layoutID), nil)
	}
	if themeID != "" {
		if _, ok := cat.Theme(themeID); !ok {
			return failure(fmt.Sprintf("Theme %q not found", themeID), nil)
		}
	}

	values := make(common.Content, len(content))
	for slot, v := range content {
		if slot != "" {
			values[slot] = v
		}
	}
	it, err := s.project.AddItemWithContent(l.ID, values, themeID)
	if err != nil {
		return failure("unable to create item", err)
	}
	s.saved("create_page")

	return success(CreatedItem{
		ItemID:     it.ID,
		LayoutID:   l.ID,
		TotalItems: s.project.Len(),
		Message:    fmt.Sprintf("Page created successfully using layout %q", l.Name),
	})
}

// UpdateItemContent sets single slot of an item.
func (s *Surface) UpdateItemContent(itemID, slot string, value common.SlotValue) (res Result) {
	defer s.guard("update_page_content", &res)

	s.catalog()
	if _, ok := s.project.Item(itemID); !ok {
		return failure(fmt.Sprintf("Page %q not found", itemID), nil)
	}
	if strings.TrimSpace(slot) == "" {
		return failure("slot is not specified", nil)
	}
	if err := s.project.UpdateContent(itemID, slot, value); err != nil {
		return failure("unable to update content", err)
	}
	s.saved("update_page_content")
	return success(UpdatedContent{ItemID: itemID, Slot: slot, NewLength: value.Len()})
}

// GetProjectSummary describes project and its items.
func (s *Surface) GetProjectSummary() (res Result) {
	defer s.guard("get_project_status", &res)

	p := s.project
	sum := ProjectSummary{
		ID:           p.ID(),
		Name:         p.Name(),
		ContentType:  p.ContentType().String(),
		Theme:        p.ThemeID(),
		TotalItems:   p.Len(),
		CurrentIndex: p.CurrentIndex(),
		Items:        []ItemSummary{},
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
	doc := render.NewRenderer(s.log).RenderProject(p, render.Options{HidePlaceholders: true})
	for i, it := range p.Items() {
		is := ItemSummary{ID: it.ID, LayoutID: it.LayoutID, Order: i, ContentCount: len(it.Content), Animation: it.Animation}
		if i < len(doc.Pages) {
			is.Preview = s.splitter.Preview(doc.Pages[i].TextContent(), previewLength)
		}
		sum.Items = append(sum.Items, is)
	}
	return success(sum)
}

// ApplyTheme binds theme to the project.
func (s *Surface) ApplyTheme(themeID string) (res Result) {
	defer s.guard("apply_theme", &res)

	t, ok := s.catalog().Theme(themeID)
	if !ok {
		return failure(fmt.Sprintf("Theme %q not found", themeID), nil)
	}
	if err := s.project.SetTheme(t.ID); err != nil {
		return failure("unable to apply theme", err)
	}
	s.saved("apply_theme")
	return success(AppliedTheme{ThemeID: t.ID, ThemeName: t.Name})
}

// ValidateContent checks content against layout constraints. Report is
// advisory, result is successful even when content is not valid.
func (s *Surface) ValidateContent(layoutID string, content common.Content) (res Result) {
	defer s.guard("validate_content", &res)

	l, ok := s.catalog().Layout(layoutID)
	if !ok {
		return failure(fmt.Sprintf("Layout %q not found", layoutID), nil)
	}
	return success(catalog.ValidateContent(l, content))
}

// ExportProject exports project in memory.
func (s *Surface) ExportProject(ctx context.Context, format string) (res Result) {
	defer s.guard("export_project", &res)

	f, err := common.ParseExportFmt(strings.ToLower(strings.TrimSpace(format)))
	if err != nil {
		return failure(fmt.Sprintf("Unsupported export format %q", format), nil)
	}
	s.catalog()

	var buf bytes.Buffer
	r, err := s.exporter.Export(ctx, s.project, f, &buf)
	if err != nil {
		return failure("export failed", err)
	}
	out := Exported{Format: f.String(), Shape: r.Shape.String(), Pages: r.Pages, Bytes: r.Bytes}
	for _, fe := range r.Failures {
		out.Failures = append(out.Failures, fe.Error())
	}
	switch {
	case f == common.ExportFmtJson:
		out.Document = buf.Bytes()
	case utf8.Valid(buf.Bytes()) && f == common.ExportFmtHtml:
		out.Encoding, out.Content = "utf-8", buf.String()
	default:
		out.Encoding, out.Content = "base64", base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return success(out)
}
