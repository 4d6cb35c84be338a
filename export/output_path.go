package export

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"pagecraft/common"
	"pagecraft/config"
	"pagecraft/project"
)

// buildOutputPath returns constructed output file path/name based on project
// values. It uses either default naming scheme or user-defined template,
// cleans up path and if requested transliterates it.
func (e *Exporter) buildOutputPath(p *project.Project, format common.ExportFmt, dst string) string {
	defaultFile := e.buildDefaultFileName(p, format)

	if e.cfg.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := e.expandOutputNameTemplate(p, format)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}

	return e.assemblePathWithSubdirs(dst, expandedName, format)
}

// FileName returns base name of the file project would be exported into.
func (e *Exporter) FileName(p *project.Project, format common.ExportFmt) string {
	return filepath.Base(e.buildOutputPath(p, format, ""))
}

func (e *Exporter) buildDefaultFileName(p *project.Project, format common.ExportFmt) string {
	baseName := strings.TrimSpace(p.Name())
	if e.cfg.FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName) + format.Ext()
}

func (e *Exporter) expandOutputNameTemplate(p *project.Project, format common.ExportFmt) string {
	expandedName, err := expandTemplate(p, config.OutputNameTemplateFieldName, e.cfg.OutputNameTemplate, format)
	if err != nil {
		e.log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(strings.TrimSpace(expandedName))
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func (e *Exporter) assemblePathWithSubdirs(outDir, expandedName string, format common.ExportFmt) string {
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := e.cleanPathSegment(pathSegments[len(pathSegments)-1]) + format.Ext()
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, e.cleanPathSegment(segment))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}

	return segments
}

func (e *Exporter) cleanPathSegment(segment string) string {
	if e.cfg.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
