package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/orgdesk/admin/internal/importer/statement"
	"github.com/orgdesk/admin/internal/movement"
	"github.com/orgdesk/admin/internal/record"
)

// Sink receives parsed movements.
type Sink interface {
	Import(ctx context.Context, accountID record.ID, params []movement.CreateParams) error
}

type Service struct {
	importers map[Format]Importer
	sink      Sink
}

func NewService(sink Sink) *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatStatement: statement.NewParser(),
		},
		sink: sink,
	}
}

// Parse reads r in the given format without sending anything.
func (s *Service) Parse(format Format, r io.Reader) ([]movement.CreateParams, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return importer.Parse(r)
}

// Import parses r and sends the movements to the account. It returns how
// many movements were sent.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader, accountID record.ID) (int, error) {
	params, err := s.Parse(format, r)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", format, err)
	}

	for i := range params {
		params[i].AccountID = accountID
	}

	if err := s.sink.Import(ctx, accountID, params); err != nil {
		return 0, err
	}

	return len(params), nil
}
