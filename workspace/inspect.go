package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/render"
	"pagecraft/state"
	"pagecraft/tools"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Show prints project summary and optionally rendered fragment tree.
func Show(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	p, err := loadProject(ctx, env)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer

	res := tools.New(env.Catalog, p, tools.WithLogger(env.Log)).GetProjectSummary()
	if !res.Success {
		return fmt.Errorf("unable to summarize project: %s", res.Error)
	}
	sum := res.Data.(tools.ProjectSummary)

	doc := render.NewRenderer(env.Log).RenderProject(p, render.Options{})
	if env.Rpt != nil {
		env.Rpt.StoreData("project/fragments.txt", []byte(doc.Dump()))
	}

	switch {
	case cmd.Bool("json"):
		return printJSON(out, sum)
	case cmd.Bool("dump"):
		_, err := io.WriteString(out, doc.Dump())
		return err
	}

	fmt.Fprintf(out, "%s (%s, theme %s)\n", sum.Name, sum.ContentType, sum.Theme)
	fmt.Fprintf(out, "id %s, updated %s\n\n", sum.ID, sum.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	if sum.TotalItems == 0 {
		fmt.Fprintln(out, "no items")
		return nil
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "\t#\tID\tLAYOUT\tANIMATION\tPREVIEW")
	for _, it := range sum.Items {
		marker := ""
		if it.Order == sum.CurrentIndex {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", marker, it.Order+1, it.ID, it.LayoutID, it.Animation, it.Preview)
	}
	return tw.Flush()
}

// Validate checks item content against layout constraints. Problems are
// reported, with --strict they fail the command.
func Validate(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("validate")

	p, err := loadProject(ctx, env)
	if err != nil {
		return err
	}
	items := p.Items()
	if cmd.Args().Present() {
		items = items[:0:0]
		for _, ref := range cmd.Args().Slice() {
			it, err := resolveItem(p, ref)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
	}

	out := cmd.Root().Writer
	invalid := 0
	for _, it := range items {
		pos := p.IndexOf(it.ID) + 1
		layout, ok := p.Catalog().Layout(it.LayoutID)
		if !ok {
			invalid++
			fmt.Fprintf(out, "%d %s: layout %q not found\n", pos, it.ID, it.LayoutID)
			continue
		}
		rep := catalog.ValidateContent(layout, it.Content)
		status := "ok"
		if !rep.Valid {
			status = "invalid"
			invalid++
		}
		fmt.Fprintf(out, "%d %s (%s): %s\n", pos, it.ID, layout.ID, status)
		for _, e := range rep.Errors {
			fmt.Fprintf(out, "    error: %s\n", e)
		}
		for _, w := range rep.Warnings {
			fmt.Fprintf(out, "    warning: %s\n", w)
		}
	}

	if invalid > 0 {
		log.Warn("Some items do not satisfy layout constraints", zap.Int("invalid", invalid), zap.Int("checked", len(items)))
		if cmd.Bool("strict") {
			return fmt.Errorf("%d of %d item(s) are invalid", invalid, len(items))
		}
	}
	return nil
}

// Layouts lists catalog layouts, optionally only for given category or
// content type.
func Layouts(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	cat := catalogOf(ctx, env)

	layouts := cat.Layouts()
	if filter := cmd.Args().First(); filter != "" {
		if ct, err := common.ParseContentType(filter); err == nil {
			layouts = cat.LayoutsForContentType(ct)
		} else {
			layouts = cat.LayoutsByCategory(filter)
		}
	}

	out := cmd.Root().Writer
	if cmd.Bool("json") {
		return printJSON(out, layouts)
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tCATEGORY\tNAME\tSLOTS")
	for _, l := range layouts {
		slots := make([]string, 0, len(l.Slots))
		for _, s := range l.Slots {
			slots = append(slots, s.ID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.ID, l.Category, l.Name, strings.Join(slots, ", "))
	}
	return tw.Flush()
}

// Themes lists catalog themes.
func Themes(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	cat := catalogOf(ctx, env)

	out := cmd.Root().Writer
	if cmd.Bool("json") {
		return printJSON(out, cat.Themes())
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tBACKGROUND\tTEXT\tPRIMARY\tHEADING FONT")
	for _, t := range cat.Themes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Colors.Background, t.Colors.Text, t.Colors.Primary, t.Fonts.Heading)
	}
	return tw.Flush()
}
