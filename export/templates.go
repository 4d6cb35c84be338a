package export

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"pagecraft/common"
	"pagecraft/config"
	"pagecraft/project"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context     string
	Name        string
	ID          string
	ContentType string
	Theme       string
	Language    string
	Format      string
	Date        string
	Items       int
	Layouts     []string
	Metadata    map[string]string
}

func buildLayouts(items []*project.Item) []string {
	result := make([]string, 0, len(items))
	for _, it := range items {
		result = append(result, it.LayoutID)
	}
	return result
}

func expandTemplate(p *project.Project, name config.TemplateFieldName, field string, format common.ExportFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	items := p.Items()
	values := Values{
		Context:     string(name),
		Name:        p.Name(),
		ID:          p.ID(),
		ContentType: p.ContentType().String(),
		Theme:       p.ThemeID(),
		Language:    p.Language().String(),
		Format:      format.String(),
		Date:        p.UpdatedAt().Format("2006-01-02"),
		Items:       len(items),
		Layouts:     buildLayouts(items),
		Metadata:    p.Metadata(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
