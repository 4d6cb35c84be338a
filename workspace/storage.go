package workspace

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pagecraft/state"
	"pagecraft/store"
)

func openStore(ctx context.Context) (*store.Store, *state.LocalEnv, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	env := state.EnvFromContext(ctx)
	st, err := store.Open(env.Cfg.Store.Path, env.Log)
	if err != nil {
		return nil, nil, err
	}
	return st, env, nil
}

// StoreSave copies project file into project store.
func StoreSave(ctx context.Context, cmd *cli.Command) error {
	st, env, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := loadProject(ctx, env)
	if err != nil {
		return err
	}
	key := cmd.Args().First()
	if key == "" {
		key = p.ID()
	}
	if err := st.Save(ctx, key, p); err != nil {
		return err
	}
	env.Log.Info("Project stored", zap.String("key", key), zap.String("store", env.Cfg.Store.Path))
	return nil
}

// StoreLoad replaces project file with project from the store.
func StoreLoad(ctx context.Context, cmd *cli.Command) error {
	st, env, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := argCount(cmd, 1, 1, env.Log); err != nil {
		return err
	}
	p, err := st.Load(ctx, cmd.Args().First(), catalogOf(ctx, env), projectOptions(env)...)
	if err != nil {
		return err
	}
	if err := saveProject(env, p); err != nil {
		return err
	}
	env.Log.Info("Project restored", zap.String("key", cmd.Args().First()), zap.String("file", projectFile(env)))
	return nil
}

// StoreList prints stored projects.
func StoreList(ctx context.Context, cmd *cli.Command) error {
	st, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.List(ctx)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer
	if cmd.Bool("json") {
		return printJSON(out, entries)
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "KEY\tNAME\tTYPE\tITEMS\tSAVED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.Key, e.Name, e.ContentType, e.Items, e.SavedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

// StoreDelete removes projects from the store.
func StoreDelete(ctx context.Context, cmd *cli.Command) error {
	st, env, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := argCount(cmd, 1, -1, env.Log); err != nil {
		return err
	}
	for _, key := range cmd.Args().Slice() {
		deleted, err := st.Delete(ctx, key)
		if err != nil {
			return err
		}
		if !deleted {
			env.Log.Warn("Project is not in store", zap.String("key", key))
			continue
		}
		env.Log.Info("Project deleted", zap.String("key", key))
	}
	return nil
}
