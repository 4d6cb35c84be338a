package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"pagecraft/catalog"
	"pagecraft/common"
)

// persisted is the on-disk form of a project.
type persisted struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	ContentType  common.ContentType `json:"contentType"`
	Items        []*Item            `json:"items"`
	CurrentIndex int                `json:"currentIndex"`
	Theme        string             `json:"theme"`
	Zoom         float64            `json:"zoomLevel"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
	Metadata     map[string]string  `json:"metadata,omitempty"`
}

var projectFields = []string{"id", "name", "contentType", "items", "currentIndex", "theme", "zoomLevel", "createdAt", "updatedAt", "metadata"}

// Marshal encodes project document. Fields loaded from a newer document
// which this version does not understand are written back unchanged.
func (p *Project) Marshal() ([]byte, error) {
	items := p.doc.Items
	if items == nil {
		items = []*Item{}
	}
	return marshalWithExtra(&persisted{
		ID:           p.doc.ID,
		Name:         p.doc.Name,
		ContentType:  p.doc.ContentType,
		Items:        items,
		CurrentIndex: p.doc.CurrentIndex,
		Theme:        p.doc.Theme,
		Zoom:         p.doc.Zoom,
		CreatedAt:    p.doc.CreatedAt,
		UpdatedAt:    p.doc.UpdatedAt,
		Metadata:     p.doc.Metadata,
	}, p.doc.extra)
}

// Save writes indented project document.
func (p *Project) Save(w io.Writer) error {
	data, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("unable to encode project: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("unable to encode project: %w", err)
	}
	buf.WriteByte('\n')
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write project: %w", err)
	}
	return nil
}

// Unmarshal decodes project document and binds it to catalog. Theme which
// is not in the catalog is replaced by the first catalog theme, cursor and
// zoom are brought into range.
func Unmarshal(data []byte, cat *catalog.Catalog, opts ...Option) (*Project, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	o := buildOptions(opts)

	var doc persisted
	extra, err := unmarshalWithExtra(data, &doc, projectFields)
	if err != nil {
		return nil, fmt.Errorf("unable to decode project: %w", err)
	}
	if doc.ID == "" {
		return nil, errors.New("project document has no id")
	}
	if !doc.ContentType.IsValid() {
		return nil, fmt.Errorf("project document has invalid content type %d", doc.ContentType)
	}

	seen := make(map[string]bool, len(doc.Items))
	for i, it := range doc.Items {
		if it == nil || it.ID == "" {
			return nil, fmt.Errorf("project item %d has no id", i)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("project item %d has duplicate id %s", i, it.ID)
		}
		seen[it.ID] = true
		if _, ok := cat.Layout(it.LayoutID); !ok {
			o.log.Warn("Project item references unknown layout", zap.String("item", it.ID), zap.String("layout", it.LayoutID))
		}
	}
	if doc.Items == nil {
		doc.Items = []*Item{}
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]string{}
	}

	if _, ok := cat.Theme(doc.Theme); !ok {
		fallback := cat.FallbackTheme().ID
		o.log.Warn("Project theme not found, using fallback", zap.String("theme", doc.Theme), zap.String("fallback", fallback))
		doc.Theme = fallback
	}

	p := &Project{
		doc: document{
			ID:           doc.ID,
			Name:         doc.Name,
			ContentType:  doc.ContentType,
			Items:        doc.Items,
			CurrentIndex: clampIndex(doc.CurrentIndex, len(doc.Items)),
			Theme:        doc.Theme,
			Zoom:         o.zoom.ClampZoom(doc.Zoom),
			CreatedAt:    doc.CreatedAt.UTC(),
			UpdatedAt:    doc.UpdatedAt.UTC(),
			Metadata:     doc.Metadata,
			extra:        extra,
		},
		cat:     cat,
		history: newHistory(o.historyDepth),
		opts:    o,
		log:     o.log,
	}
	if doc.Zoom == 0 {
		p.doc.Zoom = o.zoom.ClampZoom(1)
	}
	return p, nil
}

// Load reads project document.
func Load(r io.Reader, cat *catalog.Catalog, opts ...Option) (*Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read project: %w", err)
	}
	return Unmarshal(data, cat, opts...)
}

// LoadOrNew reads project document. Document which cannot be read or
// decoded is reported in the log and replaced with a fresh empty project.
func LoadOrNew(r io.Reader, cat *catalog.Catalog, name string, ct common.ContentType, opts ...Option) (*Project, error) {
	p, err := Load(r, cat, opts...)
	if err == nil {
		return p, nil
	}
	o := buildOptions(opts)
	o.log.Warn("Unable to load project, starting new one", zap.Error(err))
	return New(cat, name, ct, "", opts...)
}
