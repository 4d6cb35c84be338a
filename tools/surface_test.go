package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/project"
)

func newSurface(t *testing.T, opts ...Option) *Surface {
	t.Helper()
	p, err := project.New(catalog.Default(), "Launch", common.ContentTypePresentation, "")
	if err != nil {
		t.Fatalf("project.New() error = %v", err)
	}
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return New(catalog.NewRegistry(catalog.Default()), p, opts...)
}

func mustSucceed(t *testing.T, res Result) {
	t.Helper()
	if !res.Success {
		t.Fatalf("tool failed: %s", res.Error)
	}
}

func TestListAvailableLayouts(t *testing.T) {
	s := newSurface(t)

	all := s.ListAvailableLayouts("")
	mustSucceed(t, all)
	list := all.Data.(LayoutList)
	if list.TotalLayouts != len(catalog.Default().Layouts()) {
		t.Errorf("TotalLayouts = %d, want %d", list.TotalLayouts, len(catalog.Default().Layouts()))
	}
	if len(list.Themes) != 3 {
		t.Errorf("got %d themes, want 3", len(list.Themes))
	}

	tests := []struct {
		filter   string
		category string
	}{
		{"presentation", "presentation"},
		{"social", "social"},
		{"post", "social"},
		{" resume ", "resume"},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			res := s.ListAvailableLayouts(tt.filter)
			mustSucceed(t, res)
			list := res.Data.(LayoutList)
			if list.TotalLayouts == 0 {
				t.Fatal("no layouts returned")
			}
			for _, l := range list.Layouts {
				if l.Category != tt.category {
					t.Errorf("layout %s category = %q, want %q", l.ID, l.Category, tt.category)
				}
				if l.Style != "" {
					t.Errorf("layout %s listing includes default style", l.ID)
				}
			}
		})
	}

	res := s.ListAvailableLayouts("nonexistent")
	mustSucceed(t, res)
	if n := res.Data.(LayoutList).TotalLayouts; n != 0 {
		t.Errorf("unknown category returned %d layouts", n)
	}
}

func TestDescribeLayout(t *testing.T) {
	s := newSurface(t)

	res := s.DescribeLayout("title-slide")
	mustSucceed(t, res)
	info := res.Data.(LayoutInfo)
	if info.Name != "Title Slide" || len(info.Slots) == 0 || info.Style == "" {
		t.Errorf("unexpected details %+v", info)
	}

	res = s.DescribeLayout("nope")
	if res.Success || res.Error != `Layout "nope" not found` {
		t.Errorf("DescribeLayout(nope) = %+v", res)
	}
}

func TestCreateItem(t *testing.T) {
	var saved int
	s := newSurface(t, WithPersist(func(*project.Project) error {
		saved++
		return nil
	}))

	res := s.CreateItem("title-slide", common.Content{
		"title":    common.Text("Q3 Results"),
		"subtitle": common.Text("   "),
	}, "dark-mode")
	mustSucceed(t, res)
	created := res.Data.(CreatedItem)
	if created.TotalItems != 1 || created.LayoutID != "title-slide" {
		t.Errorf("unexpected result %+v", created)
	}

	p := s.Project()
	it, ok := p.Item(created.ItemID)
	if !ok {
		t.Fatalf("item %s not in project", created.ItemID)
	}
	if got := it.Content["title"].String(); got != "Q3 Results" {
		t.Errorf("title = %q", got)
	}
	// blank values keep placeholder
	if got := it.Content["subtitle"].String(); got != "Subtitle" {
		t.Errorf("subtitle = %q, want placeholder", got)
	}
	if p.ThemeID() != "dark-mode" {
		t.Errorf("theme = %q, want dark-mode", p.ThemeID())
	}
	if saved != 1 {
		t.Errorf("persist called %d times, want 1", saved)
	}

	// whole call is one undo step
	if !p.Undo() {
		t.Fatal("nothing to undo")
	}
	if p.Len() != 0 || p.ThemeID() == "dark-mode" || p.CanUndo() {
		t.Errorf("after undo: items %d theme %q canUndo %v", p.Len(), p.ThemeID(), p.CanUndo())
	}
}

func TestCreateItemRejectsBeforeChanging(t *testing.T) {
	s := newSurface(t)

	res := s.CreateItem("missing", nil, "")
	if res.Success || !strings.Contains(res.Error, `Layout "missing" not found`) {
		t.Errorf("CreateItem(missing) = %+v", res)
	}
	res = s.CreateItem("title-slide", nil, "neon")
	if res.Success || !strings.Contains(res.Error, `Theme "neon" not found`) {
		t.Errorf("CreateItem(neon) = %+v", res)
	}
	if n := s.Project().Len(); n != 0 {
		t.Errorf("project has %d items after rejected calls", n)
	}
}

func TestUpdateItemContent(t *testing.T) {
	s := newSurface(t)
	created := s.CreateItem("stats-slide", nil, "").Data.(CreatedItem)

	res := s.UpdateItemContent(created.ItemID, "stat1", common.MetricValue("42%", "Growth", "up"))
	mustSucceed(t, res)
	it, _ := s.Project().Item(created.ItemID)
	if m := it.Content["stat1"].AsMetric(); m.Value != "42%" || m.Label != "Growth" {
		t.Errorf("stat1 = %+v", m)
	}

	res = s.UpdateItemContent(created.ItemID, "heading", common.Text("Numbers"))
	mustSucceed(t, res)
	if got := res.Data.(UpdatedContent).NewLength; got != 7 {
		t.Errorf("NewLength = %d, want 7", got)
	}

	res = s.UpdateItemContent("nope", "heading", common.Text("x"))
	if res.Success || res.Error != `Page "nope" not found` {
		t.Errorf("UpdateItemContent(nope) = %+v", res)
	}
}

func TestPersistFailureDoesNotFailTool(t *testing.T) {
	s := newSurface(t, WithPersist(func(*project.Project) error {
		return errors.New("disk full")
	}))
	mustSucceed(t, s.CreateItem("title-slide", nil, ""))
	if s.Project().Len() != 1 {
		t.Error("item was not added")
	}
}

func TestGetProjectSummary(t *testing.T) {
	s := newSurface(t)

	res := s.GetProjectSummary()
	mustSucceed(t, res)
	sum := res.Data.(ProjectSummary)
	if sum.TotalItems != 0 || sum.Items == nil {
		t.Errorf("empty project summary = %+v", sum)
	}

	s.CreateItem("title-slide", common.Content{"title": common.Text("Q3 Results")}, "")
	s.CreateItem("content-slide", common.Content{"body": common.Text(strings.Repeat("word ", 40))}, "")

	sum = s.GetProjectSummary().Data.(ProjectSummary)
	if sum.TotalItems != 2 || sum.CurrentIndex != 1 || sum.ContentType != "presentation" {
		t.Errorf("summary = %+v", sum)
	}
	if !strings.Contains(sum.Items[0].Preview, "Q3 Results") {
		t.Errorf("preview = %q", sum.Items[0].Preview)
	}
	if n := len([]rune(sum.Items[1].Preview)); n > previewLength+1 {
		t.Errorf("preview is %d runes long", n)
	}
	if sum.Items[1].Order != 1 || sum.Items[1].LayoutID != "content-slide" {
		t.Errorf("second item = %+v", sum.Items[1])
	}
}

func TestApplyTheme(t *testing.T) {
	s := newSurface(t)
	s.CreateItem("title-slide", nil, "")

	res := s.ApplyTheme("warm-sand")
	mustSucceed(t, res)
	if got := res.Data.(AppliedTheme).ThemeName; got != "Warm Sand" {
		t.Errorf("ThemeName = %q", got)
	}
	if s.Project().ThemeID() != "warm-sand" {
		t.Error("theme not applied")
	}
	if res := s.ApplyTheme("neon"); res.Success {
		t.Error("unknown theme applied")
	}
}

func TestValidateContent(t *testing.T) {
	s := newSurface(t)

	res := s.ValidateContent("title-slide", common.Content{"title": common.Text(strings.Repeat("x", 61))})
	mustSucceed(t, res)
	rep := res.Data.(*catalog.Report)
	if rep.Valid {
		t.Error("over long title reported valid")
	}
	if st := rep.Slots["title"]; st.CurrentLength != 61 || st.MaxLength != 60 {
		t.Errorf("title status = %+v", st)
	}
	if s.Project().Len() != 0 {
		t.Error("validation changed project")
	}
}

func TestExportProject(t *testing.T) {
	s := newSurface(t)
	s.CreateItem("title-slide", common.Content{"title": common.Text("Q3 Results")}, "")

	res := s.ExportProject(context.Background(), "html")
	mustSucceed(t, res)
	out := res.Data.(Exported)
	if out.Encoding != "utf-8" || !strings.Contains(out.Content, "Q3 Results") || out.Pages != 1 {
		t.Errorf("html export = %+v", out)
	}

	res = s.ExportProject(context.Background(), "PPTX")
	mustSucceed(t, res)
	out = res.Data.(Exported)
	data, err := base64.StdEncoding.DecodeString(out.Content)
	if err != nil || out.Encoding != "base64" {
		t.Fatalf("pptx export encoding %q: %v", out.Encoding, err)
	}
	if !strings.HasPrefix(string(data), "PK") {
		t.Error("pptx export is not a zip archive")
	}

	res = s.ExportProject(context.Background(), "json")
	mustSucceed(t, res)
	var doc map[string]any
	if err := json.Unmarshal(res.Data.(Exported).Document, &doc); err != nil {
		t.Fatalf("json export: %v", err)
	}
	if doc["name"] != "Launch" {
		t.Errorf("exported name = %v", doc["name"])
	}

	if res := s.ExportProject(context.Background(), "docx"); res.Success {
		t.Error("unsupported format exported")
	}
}

func TestCall(t *testing.T) {
	s := newSurface(t)
	ctx := context.Background()

	res := s.Call(ctx, "create_page", json.RawMessage(`{"layoutId":"stats-slide","content":{"heading":{"text":"KPIs"},"stat1":{"value":42,"label":"Users","trend":"up"}}}`))
	mustSucceed(t, res)
	id := res.Data.(CreatedItem).ItemID
	it, _ := s.Project().Item(id)
	if it.Content["heading"].String() != "KPIs" {
		t.Errorf("heading = %q", it.Content["heading"].String())
	}
	if m := it.Content["stat1"].AsMetric(); m.Value != "42" || m.Trend != "up" {
		t.Errorf("stat1 = %+v", m)
	}

	res = s.Call(ctx, "update_page_content", json.RawMessage(`{"pageId":"`+id+`","slot":"heading","content":"Key numbers"}`))
	mustSucceed(t, res)

	tests := []struct {
		name string
		args string
		ok   bool
	}{
		{"get_available_components", `{"category":"social"}`, true},
		{"get_available_components", ``, true},
		{"get_component_details", `{"layoutId":"quote-slide"}`, true},
		{"get_project_status", `null`, true},
		{"apply_theme", `{"themeId":"dark-mode"}`, true},
		{"validate_content", `{"layoutId":"title-slide","content":{"title":"Hi"}}`, true},
		{"export_project", `{"format":"json"}`, true},
		{"create_page", `{"layoutId":"title-slide","content":[1]}`, false},
		{"create_page", `{not json`, false},
		{"drop_database", `{}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Call(ctx, tt.name, json.RawMessage(tt.args))
			if res.Success != tt.ok {
				t.Errorf("Call(%s, %s) success = %v, error %q", tt.name, tt.args, res.Success, res.Error)
			}
			if !res.Success && res.Error == "" {
				t.Error("failure without message")
			}
		})
	}
}

func TestCallFollowsCatalogReload(t *testing.T) {
	s := newSurface(t)
	mustSucceed(t, s.CreateItem("title-slide", nil, ""))

	// reload with catalog which lost the layout
	reloaded, err := catalog.Parse([]byte("layouts:\n  presentation:\n    - id: plain\n      slots: [heading]\n"), "test.yaml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	s.reg.Swap(reloaded)

	if res := s.DescribeLayout("title-slide"); res.Success {
		t.Error("layout found after reload")
	}
	if s.Project().Catalog() != reloaded {
		t.Error("project still bound to previous catalog")
	}
	mustSucceed(t, s.CreateItem("plain", nil, ""))
	// dangling item still exports as error page
	res := s.ExportProject(context.Background(), "html")
	mustSucceed(t, res)
	if !strings.Contains(res.Data.(Exported).Content, "pc-error") {
		t.Error("dangling item not rendered as error")
	}
}

func TestTools(t *testing.T) {
	list := Tools()
	if len(list) != 8 {
		t.Fatalf("got %d tools, want 8", len(list))
	}
	for _, tool := range list {
		var schema map[string]any
		if err := json.Unmarshal(tool.Params, &schema); err != nil {
			t.Errorf("tool %s schema: %v", tool.Name, err)
		}
	}
	if tool, ok := Lookup("apply_theme"); !ok || !tool.Mutates {
		t.Error("apply_theme must be known mutating tool")
	}
}
