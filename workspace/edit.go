package workspace

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pagecraft/common"
	"pagecraft/project"
	"pagecraft/state"
)

// New creates project file.
func New(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("edit")

	fname := projectFile(env)
	if _, err := os.Stat(fname); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("project file '%s' already exists, use --force to replace it", fname)
	}

	ct := env.Cfg.Editor.DefaultContentType
	if s := cmd.String("type"); s != "" {
		var err error
		if ct, err = common.ParseContentType(s); err != nil {
			return fmt.Errorf("unknown content type %q (supported types: %s)", s, strings.Join(common.ContentTypeNames(), ", "))
		}
	}
	themeID := cmd.String("theme")
	if themeID == "" {
		themeID = env.Cfg.Editor.DefaultTheme
	}

	cat := catalogOf(ctx, env)
	if _, ok := cat.Theme(themeID); !ok && cmd.String("theme") == "" {
		// configured default may be missing from custom catalog
		log.Warn("Default theme is not in catalog, using first catalog theme", zap.String("theme", themeID))
		themeID = ""
	}

	p, err := project.New(cat, strings.Join(cmd.Args().Slice(), " "), ct, themeID, projectOptions(env)...)
	if err != nil {
		return err
	}
	if lang := env.Cfg.Editor.Language; lang != "" {
		if err := p.SetMetadata(project.MetaLanguage, lang); err != nil {
			return err
		}
	}
	if err := saveProject(env, p); err != nil {
		return err
	}
	log.Info("Project created", zap.String("file", fname), zap.String("name", p.Name()), zap.Stringer("type", ct), zap.String("theme", p.ThemeID()))
	fmt.Fprintln(cmd.Root().Writer, p.ID())
	return nil
}

// Add appends items built from layouts given as arguments.
func Add(ctx context.Context, cmd *cli.Command) error {
	return modify(ctx, func(p *project.Project, log *zap.Logger) error {
		if err := argCount(cmd, 1, -1, log); err != nil {
			return err
		}
		for _, layoutID := range cmd.Args().Slice() {
			it, err := p.AddItem(layoutID)
			if err != nil {
				return err
			}
			if anim := cmd.String("animation"); anim != "" {
				if err := setAnimation(p, it.ID, anim); err != nil {
					return err
				}
			}
			log.Info("Item added", zap.String("id", it.ID), zap.String("layout", layoutID), zap.Int("position", p.Len()))
			fmt.Fprintln(cmd.Root().Writer, it.ID)
		}
		return nil
	})
}

func setAnimation(p *project.Project, id, name string) error {
	anim, err := common.ParseAnimation(name)
	if err != nil {
		return fmt.Errorf("unknown animation %q (supported: %s)", name, strings.Join(common.AnimationNames(), ", "))
	}
	return p.SetAnimation(id, anim)
}

// Set changes item content, style overrides, animation or layout. Content
// is given as SLOT VALUE pairs.
func Set(ctx context.Context, cmd *cli.Command) error {
	return modify(ctx, func(p *project.Project, log *zap.Logger) error {
		if err := argCount(cmd, 1, -1, log); err != nil {
			return err
		}
		it, err := resolveItem(p, cmd.Args().First())
		if err != nil {
			return err
		}

		if id := cmd.String("layout"); id != "" {
			if err := p.ChangeLayout(it.ID, id); err != nil {
				return err
			}
		}
		if anim := cmd.String("animation"); anim != "" {
			if err := setAnimation(p, it.ID, anim); err != nil {
				return err
			}
		}
		for _, kv := range cmd.StringSlice("style") {
			prop, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("style override %q is not in PROPERTY=VALUE form", kv)
			}
			prop, value = strings.TrimSpace(prop), strings.TrimSpace(value)
			if value == "" {
				err = p.ClearStyleOverride(it.ID, prop)
			} else {
				err = p.UpdateStyleOverride(it.ID, prop, value)
			}
			if err != nil {
				return err
			}
		}

		pairs := cmd.Args().Tail()
		if len(pairs)%2 != 0 {
			return fmt.Errorf("content must be given as SLOT VALUE pairs, slot '%s' has no value", pairs[len(pairs)-1])
		}
		// layout may have been changed above
		it, _ = p.Item(it.ID)
		layout, _ := p.Catalog().Layout(it.LayoutID)
		values := make(common.Content, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			values[pairs[i]] = parseSlotValue(layout, pairs[i], pairs[i+1])
		}
		if len(values) > 0 {
			if err := p.UpdateContentMap(it.ID, values); err != nil {
				return err
			}
		}
		log.Info("Item updated", zap.String("id", it.ID), zap.Int("slots", len(values)))
		return nil
	})
}

// Theme applies theme to the whole project.
func Theme(ctx context.Context, cmd *cli.Command) error {
	return modify(ctx, func(p *project.Project, log *zap.Logger) error {
		if err := argCount(cmd, 1, 1, log); err != nil {
			return err
		}
		if err := p.SetTheme(cmd.Args().First()); err != nil {
			return err
		}
		log.Info("Theme applied", zap.String("theme", p.ThemeID()))
		return nil
	})
}

// Move reorders items, positions are 1-based.
func Move(ctx context.Context, cmd *cli.Command) error {
	return modify(ctx, func(p *project.Project, log *zap.Logger) error {
		if err := argCount(cmd, 2, 2, log); err != nil {
			return err
		}
		it, err := resolveItem(p, cmd.Args().Get(0))
		if err != nil {
			return err
		}
		to, err := strconv.Atoi(cmd.Args().Get(1))
		if err != nil {
			return fmt.Errorf("target position %q is not a number", cmd.Args().Get(1))
		}
		if err := p.MoveItem(p.IndexOf(it.ID), to-1); err != nil {
			return err
		}
		log.Info("Item moved", zap.String("id", it.ID), zap.Int("position", p.IndexOf(it.ID)+1))
		return nil
	})
}

// Remove deletes items.
func Remove(ctx context.Context, cmd *cli.Command) error {
	return modify(ctx, func(p *project.Project, log *zap.Logger) error {
		if err := argCount(cmd, 1, -1, log); err != nil {
			return err
		}
		// resolve everything first so positions do not shift under us
		var ids []string
		for _, ref := range cmd.Args().Slice() {
			it, err := resolveItem(p, ref)
			if err != nil {
				return err
			}
			ids = append(ids, it.ID)
		}
		for _, id := range ids {
			if p.RemoveItem(id) {
				log.Info("Item removed", zap.String("id", id))
			}
		}
		return nil
	})
}

// Duplicate copies item placing copy right after the original.
func Duplicate(ctx context.Context, cmd *cli.Command) error {
	return modify(ctx, func(p *project.Project, log *zap.Logger) error {
		if err := argCount(cmd, 1, 1, log); err != nil {
			return err
		}
		it, err := resolveItem(p, cmd.Args().First())
		if err != nil {
			return err
		}
		dup, err := p.DuplicateItem(it.ID)
		if err != nil {
			return err
		}
		log.Info("Item duplicated", zap.String("from", it.ID), zap.String("id", dup.ID))
		fmt.Fprintln(cmd.Root().Writer, dup.ID)
		return nil
	})
}
