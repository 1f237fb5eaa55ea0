package importer

import (
	"errors"
	"io"

	"github.com/orgdesk/admin/internal/movement"
)

// ErrUnknownFormat is returned for import formats no parser handles.
var ErrUnknownFormat = errors.New("unknown import format")

type Format string

const (
	// FormatStatement is a CSV bank statement whose layout is detected from
	// its header row.
	FormatStatement Format = "statement"
)

type Importer interface {
	Parse(r io.Reader) ([]movement.CreateParams, error)
}
