// Package options projects record collections into label/value pairs for
// selection widgets.
package options

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/orgdesk/admin/internal/record"
)

// Option is one selectable entry.
type Option struct {
	Label string    `json:"label"`
	Value record.ID `json:"value"`
}

// Projector orders labels using the collation rules of a locale.
type Projector struct {
	tag language.Tag
}

// NewProjector returns a projector for the given BCP 47 locale. An
// unparsable locale falls back to language.Und.
func NewProjector(locale string) *Projector {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}

	return &Projector{tag: tag}
}

// Sort orders options by label in place.
func (p *Projector) Sort(opts []Option) {
	// A Collator keeps internal buffers, so each call gets its own.
	c := collate.New(p.tag)

	slices.SortStableFunc(opts, func(a, b Option) int {
		return c.CompareString(a.Label, b.Label)
	})
}

// Project builds a fresh option list from items. keep may be nil.
func Project[T any](p *Projector, items []T, keep func(T) bool, label func(T) string, value func(T) record.ID) []Option {
	opts := make([]Option, 0, len(items))

	for _, item := range items {
		if keep != nil && !keep(item) {
			continue
		}

		opts = append(opts, Option{Label: label(item), Value: value(item)})
	}

	p.Sort(opts)

	return opts
}
