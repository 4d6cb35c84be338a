package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pagecraft/catalog"
	"pagecraft/export"
	"pagecraft/project"
	"pagecraft/server"
	"pagecraft/state"
	"pagecraft/store"
	"pagecraft/tools"
)

// Serve exposes project over HTTP until interrupted. Project comes either
// from project file or, with --key, from project store, and every change
// made through tools is written back.
func Serve(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("serve")

	cat := catalogOf(ctx, env)
	if env.Cfg.Catalog.Watch && env.Cfg.Catalog.Source != "" {
		if err := catalog.Watch(ctx, env.Catalog, env.Cfg.Catalog.Source, env.Log); err != nil {
			log.Warn("Catalog changes will not be picked up", zap.Error(err))
		}
	}

	var (
		p       *project.Project
		persist func(*project.Project) error
	)
	if key := cmd.String("key"); key != "" {
		st, err := store.Open(env.Cfg.Store.Path, env.Log)
		if err != nil {
			return err
		}
		defer st.Close()

		p, err = st.Load(ctx, key, cat, projectOptions(env)...)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Info("Project is not in store, starting new one", zap.String("key", key))
			if p, err = project.New(cat, key, env.Cfg.Editor.DefaultContentType, "", projectOptions(env)...); err != nil {
				return err
			}
		case err != nil:
			return err
		}
		persist = st.Persister(context.WithoutCancel(ctx), key)
	} else {
		fname := projectFile(env)
		if _, err := os.Stat(fname); errors.Is(err, os.ErrNotExist) {
			log.Info("Project file does not exist, starting new one", zap.String("file", fname))
			if p, err = project.New(cat, "", env.Cfg.Editor.DefaultContentType, "", projectOptions(env)...); err != nil {
				return err
			}
		} else if p, err = loadProject(ctx, env); err != nil {
			return err
		}
		persist = func(p *project.Project) error { return saveProject(env, p) }
	}

	cfg := env.Cfg.Server
	if listen := cmd.String("listen"); listen != "" {
		cfg.Listen = listen
	}

	exportCfg := env.Cfg.Export
	exporter := export.NewExporter(&exportCfg, env.Log, export.WithBaseDir(filepath.Dir(projectFile(env))))
	surface := tools.New(env.Catalog, p,
		tools.WithLogger(env.Log),
		tools.WithExporter(exporter),
		tools.WithPersist(persist),
	)

	log.Info("Serving project", zap.String("name", p.Name()), zap.String("id", p.ID()), zap.String("listen", cfg.Listen))
	if err := server.New(&cfg, surface, exporter, env.Log).Run(ctx); err != nil {
		return fmt.Errorf("unable to serve project: %w", err)
	}
	return nil
}
