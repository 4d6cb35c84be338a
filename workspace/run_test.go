package workspace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/config"
	"pagecraft/project"
	"pagecraft/state"
	"pagecraft/store"
	"pagecraft/tools"
)

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	dir := t.TempDir()
	cfg.Store.Path = filepath.Join(dir, "store.db")

	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	env.ProjectFile = filepath.Join(dir, "deck.json")
	return ctx, env
}

// run executes command line and returns what it printed.
func run(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:           "pagecraft",
		Writer:         &out,
		ErrWriter:      &out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Commands:       Commands(nil),
	}
	err := app.Run(ctx, append([]string{"pagecraft"}, args...))
	return out.String(), err
}

func mustRun(t *testing.T, ctx context.Context, args ...string) string {
	t.Helper()
	out, err := run(t, ctx, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func readProject(t *testing.T, env *state.LocalEnv) *project.Project {
	t.Helper()
	f, err := os.Open(env.ProjectFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	p, err := project.Load(f, catalog.Default())
	if err != nil {
		t.Fatalf("load project: %v", err)
	}
	return p
}

func TestNew(t *testing.T) {
	ctx, env := setupTestEnv(t)

	out := mustRun(t, ctx, "new", "--type", "post", "--theme", "warm-sand", "Summer", "Sale")
	p := readProject(t, env)
	if p.Name() != "Summer Sale" || p.ContentType() != common.ContentTypePost || p.ThemeID() != "warm-sand" {
		t.Errorf("unexpected project %s %s %s", p.Name(), p.ContentType(), p.ThemeID())
	}
	if strings.TrimSpace(out) != p.ID() {
		t.Errorf("printed %q, want project id", out)
	}
	if p.Language().String() != "en" {
		t.Errorf("language = %s", p.Language())
	}

	if _, err := run(t, ctx, "new", "Other"); err == nil {
		t.Error("existing project file was replaced without --force")
	}
	mustRun(t, ctx, "new", "--force", "Other")
	if p := readProject(t, env); p.Name() != "Other" || p.ContentType() != common.ContentTypePresentation {
		t.Errorf("forced project %s %s", p.Name(), p.ContentType())
	}

	if _, err := run(t, ctx, "new", "--force", "--type", "poster"); err == nil {
		t.Error("unknown content type accepted")
	}
}

func TestEditing(t *testing.T) {
	ctx, env := setupTestEnv(t)
	mustRun(t, ctx, "new", "Q3 Deck")

	out := mustRun(t, ctx, "add", "title-slide", "content-slide", "stats-slide")
	if ids := strings.Fields(out); len(ids) != 3 {
		t.Fatalf("add printed %q", out)
	}
	if _, err := run(t, ctx, "add", "no-such-layout"); err == nil {
		t.Error("unknown layout accepted")
	}

	mustRun(t, ctx, "set", "1", "title", "Q3 Results")
	mustRun(t, ctx, "set", "--style", "background=#000000", "--animation", "fadeIn", "2", "body", `first\nsecond`)
	mustRun(t, ctx, "set", "3", "stat1", "42%|Growth|up")

	p := readProject(t, env)
	items := p.Items()
	if got := items[0].Content["title"].String(); got != "Q3 Results" {
		t.Errorf("title = %q", got)
	}
	if got := items[1].Content["body"].String(); got != "first\nsecond" {
		t.Errorf("body = %q", got)
	}
	if items[1].StyleOverrides["background"] != "#000000" || items[1].Animation != common.AnimationFadeIn {
		t.Errorf("item 2 style %v animation %s", items[1].StyleOverrides, items[1].Animation)
	}
	if m := items[2].Content["stat1"].AsMetric(); m.Value != "42%" || m.Label != "Growth" || m.Trend != "up" {
		t.Errorf("stat1 = %+v", m)
	}

	if _, err := run(t, ctx, "set", "1", "title"); err == nil {
		t.Error("slot without value accepted")
	}
	if _, err := run(t, ctx, "set", "9", "title", "x"); err == nil {
		t.Error("out of range position accepted")
	}

	statsID := items[2].ID
	mustRun(t, ctx, "move", "3", "1")
	if p := readProject(t, env); p.Items()[0].ID != statsID {
		t.Error("stats slide was not moved to the front")
	}

	out = mustRun(t, ctx, "duplicate", statsID)
	dupID := strings.TrimSpace(out)
	p = readProject(t, env)
	if p.Len() != 4 || p.Items()[1].ID != dupID {
		t.Fatalf("duplicate not placed after original")
	}

	mustRun(t, ctx, "remove", statsID, "2")
	p = readProject(t, env)
	if p.Len() != 2 {
		t.Fatalf("got %d items after remove, want 2", p.Len())
	}
	for _, it := range p.Items() {
		if it.ID == statsID || it.ID == dupID {
			t.Errorf("item %s was not removed", it.ID)
		}
	}

	mustRun(t, ctx, "theme", "dark-mode")
	if p := readProject(t, env); p.ThemeID() != "dark-mode" {
		t.Errorf("theme = %s", p.ThemeID())
	}
	if _, err := run(t, ctx, "theme", "neon"); err == nil {
		t.Error("unknown theme accepted")
	}

	mustRun(t, ctx, "set", "--layout", "quote-slide", "1")
	if p := readProject(t, env); p.Items()[0].LayoutID != "quote-slide" {
		t.Errorf("layout = %s", p.Items()[0].LayoutID)
	}
}

func TestMissingProject(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	_, err := run(t, ctx, "add", "title-slide")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("add without project: %v", err)
	}
}

func TestShowValidate(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	mustRun(t, ctx, "new", "Deck")
	mustRun(t, ctx, "add", "title-slide", "content-slide")
	mustRun(t, ctx, "set", "1", "title", "Quarterly")

	out := mustRun(t, ctx, "show")
	for _, want := range []string{"Deck (presentation", "title-slide", "content-slide", "Quarterly"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output lacks %q:\n%s", want, out)
		}
	}

	var sum tools.ProjectSummary
	if err := json.Unmarshal([]byte(mustRun(t, ctx, "show", "--json")), &sum); err != nil {
		t.Fatalf("show --json: %v", err)
	}
	if sum.TotalItems != 2 || sum.CurrentIndex != 1 {
		t.Errorf("summary = %+v", sum)
	}

	if out := mustRun(t, ctx, "show", "--dump"); !strings.Contains(out, "document id=") {
		t.Errorf("dump output:\n%s", out)
	}

	out = mustRun(t, ctx, "validate")
	if strings.Contains(out, "invalid") {
		t.Errorf("valid project reported invalid:\n%s", out)
	}

	mustRun(t, ctx, "set", "1", "title", strings.Repeat("x", 61))
	out, err := run(t, ctx, "validate", "--strict")
	if err == nil {
		t.Error("strict validation passed over long title")
	}
	if !strings.Contains(out, "exceeds max 60") {
		t.Errorf("validate output:\n%s", out)
	}
	// advisory by default
	mustRun(t, ctx, "validate", "1")
}

func TestListings(t *testing.T) {
	ctx, _ := setupTestEnv(t)

	out := mustRun(t, ctx, "layouts", "social")
	if !strings.Contains(out, "instagram-square") || strings.Contains(out, "title-slide") {
		t.Errorf("layouts social:\n%s", out)
	}
	// content type names select their category
	if out := mustRun(t, ctx, "layouts", "post"); !strings.Contains(out, "instagram-square") {
		t.Errorf("layouts post:\n%s", out)
	}

	var layouts []map[string]any
	if err := json.Unmarshal([]byte(mustRun(t, ctx, "layouts", "--json")), &layouts); err != nil {
		t.Fatal(err)
	}
	if len(layouts) != len(catalog.Default().Layouts()) {
		t.Errorf("got %d layouts", len(layouts))
	}

	out = mustRun(t, ctx, "themes")
	for _, id := range []string{"clean-white", "dark-mode", "warm-sand"} {
		if !strings.Contains(out, id) {
			t.Errorf("themes output lacks %s", id)
		}
	}
}

func TestExport(t *testing.T) {
	ctx, _ := setupTestEnv(t)
	mustRun(t, ctx, "new", "Board Deck")
	mustRun(t, ctx, "add", "title-slide")
	mustRun(t, ctx, "set", "1", "title", "Hello")

	dst := t.TempDir()
	for _, format := range []string{"html", "pdf", "pptx", "png", "json"} {
		t.Run(format, func(t *testing.T) {
			out := mustRun(t, ctx, "export", format, dst)
			path := strings.TrimSpace(out)
			if filepath.Base(path) != "Board Deck."+format {
				t.Errorf("output path %q", path)
			}
			fi, err := os.Stat(path)
			if err != nil || fi.Size() == 0 {
				t.Errorf("output file %s: %v", path, err)
			}
		})
	}

	if _, err := run(t, ctx, "export", "html", dst); err == nil {
		t.Error("existing output overwritten without --overwrite")
	}
	mustRun(t, ctx, "export", "--overwrite", "html", dst)

	if _, err := run(t, ctx, "export", "docx", dst); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestStoreCommands(t *testing.T) {
	ctx, env := setupTestEnv(t)
	mustRun(t, ctx, "new", "Stored Deck")
	mustRun(t, ctx, "add", "title-slide")
	original := readProject(t, env)

	mustRun(t, ctx, "store", "save", "deck")
	out := mustRun(t, ctx, "store", "list")
	if !strings.Contains(out, "deck") || !strings.Contains(out, "Stored Deck") {
		t.Errorf("store list:\n%s", out)
	}

	if err := os.Remove(env.ProjectFile); err != nil {
		t.Fatal(err)
	}
	mustRun(t, ctx, "store", "load", "deck")
	if !readProject(t, env).Equal(original) {
		t.Error("restored project differs")
	}

	var entries []store.Entry
	if err := json.Unmarshal([]byte(mustRun(t, ctx, "store", "list", "--json")), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Items != 1 {
		t.Errorf("entries = %+v", entries)
	}

	mustRun(t, ctx, "store", "delete", "deck", "missing")
	if _, err := run(t, ctx, "store", "load", "deck"); err == nil {
		t.Error("deleted project loaded")
	}
}

func TestParseSlotValue(t *testing.T) {
	stats, _ := catalog.Default().Layout("stats-slide")

	tests := []struct {
		slot, arg string
		want      common.SlotValue
	}{
		{"heading", "Plain", common.Text("Plain")},
		{"heading", `a\nb`, common.Text("a\nb")},
		{"stat1", "42%|Growth|up", common.MetricValue("42%", "Growth", "up")},
		{"stat1", "7", common.MetricValue("7", "", "")},
		{"stat2", " 1 | two ", common.MetricValue("1", "two", "")},
	}
	for _, tt := range tests {
		if got := parseSlotValue(stats, tt.slot, tt.arg); !got.Equal(tt.want) {
			t.Errorf("parseSlotValue(%s, %q) = %+v, want %+v", tt.slot, tt.arg, got, tt.want)
		}
	}
	if got := parseSlotValue(nil, "stat1", "1|2"); !got.Equal(common.Text("1|2")) {
		t.Errorf("without layout value = %+v", got)
	}
}
