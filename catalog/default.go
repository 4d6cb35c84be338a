package catalog

import (
	_ "embed"
	"sync"

	"go.uber.org/zap"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// DefaultSource names embedded catalog in logs and reports.
const DefaultSource = "embedded:default_catalog.yaml"

var defaultOnce = sync.OnceValue(func() *Catalog {
	c, err := parse(defaultCatalog, DefaultSource, zap.NewNop(), nil)
	if err != nil {
		// this should never happen
		panic("embedded default catalog is broken: " + err.Error())
	}
	return c
})

// Default returns built-in catalog. Catalogs are immutable so the same
// instance is shared.
func Default() *Catalog {
	return defaultOnce()
}
