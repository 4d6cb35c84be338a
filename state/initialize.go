package state

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"pagecraft/catalog"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// PrepareCatalog loads configured layout catalog into registry. Catalog
// source which cannot be used is not fatal, built-in catalog replaces it
// and the reason is logged.
func (e *LocalEnv) PrepareCatalog(ctx context.Context) *catalog.Catalog {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	var source string
	if e.Cfg != nil {
		source = e.Cfg.Catalog.Source
	}

	cat, err := catalog.Load(ctx, source, log)
	if err != nil && errors.Is(err, catalog.ErrConfigLoadFailed) {
		log.Info("Built-in catalog is used", zap.Error(err))
	}
	for _, p := range cat.Problems() {
		log.Debug("Catalog definition ignored", zap.Error(p))
	}

	if e.Rpt != nil && len(source) > 0 {
		if err := e.Rpt.StoreCopy("catalog/"+filepath.Base(source), source); err != nil {
			log.Debug("Unable to store catalog in report", zap.Error(err))
		}
	}

	if e.Catalog == nil {
		e.Catalog = catalog.NewRegistry(cat)
	} else {
		e.Catalog.Swap(cat)
	}
	return cat
}
