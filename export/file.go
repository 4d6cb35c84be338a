package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"pagecraft/common"
	"pagecraft/project"
)

// ExportFile exports project into file under dst directory. File name comes
// from output name template or project name. Output is first written next to
// destination and renamed when complete, so failed export never leaves
// partial file behind.
func (e *Exporter) ExportFile(ctx context.Context, p *project.Project, format common.ExportFmt, dst string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputPath := e.buildOutputPath(p, format, dst)

	if _, err := os.Stat(outputPath); err == nil {
		if !e.overwrite {
			return nil, fmt.Errorf("output file already exists: %s", outputPath)
		}
		e.log.Warn("Overwriting existing file", zap.String("file", outputPath))
	} else if !os.IsNotExist(err) {
		return nil, err
	} else if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	e.log.Info("Exporting", zap.Stringer("format", format), zap.String("project", p.Name()), zap.String("output", outputPath))

	f, err := os.CreateTemp(filepath.Dir(outputPath), "."+filepath.Base(outputPath)+".*")
	if err != nil {
		return nil, fmt.Errorf("unable to create output file: %w", err)
	}
	tmpName := f.Name()
	// clean temporary file, it is gone already after successful rename
	defer os.Remove(tmpName)
	defer f.Close()

	res, err := e.Export(ctx, p, format, f)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("unable to finalize output file: %w", err)
	}
	if err := os.Rename(tmpName, outputPath); err != nil {
		return nil, fmt.Errorf("unable to move output file in place: %w", err)
	}
	res.Path = outputPath
	return res, nil
}
