package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"pagecraft/common"
	"pagecraft/export"
	"pagecraft/state"
)

// Export writes project in requested format into destination directory.
func Export(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	if err := argCount(cmd, 1, 2, log); err != nil {
		return err
	}
	format, err := common.ParseExportFmt(strings.ToLower(cmd.Args().Get(0)))
	if err != nil {
		return fmt.Errorf("unknown export format %q (supported formats: %s)", cmd.Args().Get(0), strings.Join(common.ExportFmtNames(), ", "))
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	p, err := loadProject(ctx, env)
	if err != nil {
		return err
	}

	cfg := env.Cfg.Export
	if cmd.Bool("abort-on-error") {
		cfg.AbortOnError = true
	}
	env.Overwrite = cmd.Bool("overwrite")
	exporter := export.NewExporter(&cfg, env.Log,
		export.WithBaseDir(filepath.Dir(projectFile(env))),
		export.WithOverwrite(env.Overwrite),
	)

	log.Info("Export starting", zap.String("project", p.Name()), zap.Stringer("format", format), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Export completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if env.Rpt != nil {
		env.Rpt.StoreData("project/fragments.txt", []byte(exporter.Render(p).Dump()))
	}

	res, err := exporter.ExportFile(ctx, p, format, dst)
	if err != nil {
		return err
	}
	if ferr := res.Err(); ferr != nil {
		log.Warn("Some items were not exported", zap.Int("failed", len(res.Failures)), zap.Error(ferr))
	}
	env.Rpt.Store(fmt.Sprintf("result-%s%s", p.ID(), format.Ext()), res.Path)

	log.Info("Output written", zap.String("file", res.Path), zap.Stringer("shape", res.Shape), zap.Int("pages", res.Pages), zap.Int64("bytes", res.Bytes), zap.Int("failures", len(res.Failures)))
	fmt.Fprintln(cmd.Root().Writer, res.Path)
	return nil
}
