package export

import (
	"errors"
	"fmt"

	"pagecraft/common"
)

// ErrUnsupported is returned when content type cannot be assembled in the
// requested format.
var ErrUnsupported = errors.New("unsupported export")

// ExportError describes failed export. Index is -1 when failure is not
// tied to a particular item.
type ExportError struct {
	Format common.ExportFmt
	Index  int
	ItemID string
	Err    error
}

func (e *ExportError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s export failed: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("%s export failed on item %d (%s): %v", e.Format, e.Index+1, e.ItemID, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func exportError(format common.ExportFmt, err error) error {
	if err == nil {
		return nil
	}
	var ee *ExportError
	if errors.As(err, &ee) {
		return err
	}
	return &ExportError{Format: format, Index: -1, Err: err}
}
