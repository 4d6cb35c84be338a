// Package workspace implements command line actions operating on a project
// file.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/project"
	"pagecraft/state"
)

// DefaultProjectFile is used when project file is not specified.
const DefaultProjectFile = "project.json"

func projectOptions(env *state.LocalEnv) []project.Option {
	return []project.Option{
		project.WithEditorConfig(&env.Cfg.Editor),
		project.WithLogger(env.Log),
	}
}

// catalogOf returns current catalog loading it on first use.
func catalogOf(ctx context.Context, env *state.LocalEnv) *catalog.Catalog {
	if env.Catalog == nil {
		return env.PrepareCatalog(ctx)
	}
	return env.Catalog.Catalog()
}

func projectFile(env *state.LocalEnv) string {
	if env.ProjectFile == "" {
		return DefaultProjectFile
	}
	return env.ProjectFile
}

// loadProject reads project file subcommands operate on.
func loadProject(ctx context.Context, env *state.LocalEnv) (*project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fname := projectFile(env)
	f, err := os.Open(fname)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("project file '%s' does not exist, use 'new' command to create it", fname)
		}
		return nil, fmt.Errorf("unable to open project: %w", err)
	}
	defer f.Close()

	p, err := project.Load(f, catalogOf(ctx, env), projectOptions(env)...)
	if err != nil {
		return nil, fmt.Errorf("unable to load project '%s': %w", fname, err)
	}
	if err := env.Rpt.StoreCopy("project/"+filepath.Base(fname), fname); err != nil {
		env.Log.Debug("Unable to store project in report", zap.Error(err))
	}
	return p, nil
}

// saveProject writes project file replacing it atomically.
func saveProject(env *state.LocalEnv, p *project.Project) error {
	fname := projectFile(env)
	dir := filepath.Dir(fname)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create project directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fname)+".*")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := p.Save(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to write project: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to write project: %w", err)
	}
	if err := os.Rename(tmp.Name(), fname); err != nil {
		return fmt.Errorf("unable to replace project file: %w", err)
	}
	env.Log.Debug("Project saved", zap.String("file", fname), zap.Int("items", p.Len()))
	return nil
}

// modify loads project, applies fn and saves result.
func modify(ctx context.Context, fn func(p *project.Project, log *zap.Logger) error) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")

	p, err := loadProject(ctx, env)
	if err != nil {
		return err
	}
	if err := fn(p, log); err != nil {
		return err
	}
	return saveProject(env, p)
}

// resolveItem accepts item id or its 1-based position.
func resolveItem(p *project.Project, ref string) (*project.Item, error) {
	if it, ok := p.Item(ref); ok {
		return it, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if it, ok := p.ItemAt(n - 1); ok {
			return it, nil
		}
		return nil, fmt.Errorf("%w: position %d is out of range 1..%d", project.ErrItemNotFound, n, p.Len())
	}
	return nil, fmt.Errorf("%w: %s", project.ErrItemNotFound, ref)
}

// parseSlotValue turns command line argument into slot value. Metric slots
// use "value|label|trend" notation.
func parseSlotValue(layout *catalog.Layout, slot, arg string) common.SlotValue {
	if layout != nil {
		for _, s := range layout.Slots {
			if s.ID == slot && s.Kind == common.SlotKindDataMetric {
				parts := strings.SplitN(arg, "|", 3)
				parts = append(parts, "", "")
				return common.MetricValue(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]))
			}
		}
	}
	return common.Text(unescape(arg))
}

// unescape lets multi line text be passed as single argument.
func unescape(s string) string {
	return strings.NewReplacer(`\n`, "\n", `\t`, "\t").Replace(s)
}

func argCount(cmd *cli.Command, min, max int, log *zap.Logger) error {
	if n := cmd.Args().Len(); n < min {
		return fmt.Errorf("%s: expected at least %d argument(s), got %d", cmd.Name, min, n)
	} else if max >= 0 && n > max {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[max:]))
	}
	return nil
}
