package options_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orgdesk/admin/internal/options"
	"github.com/orgdesk/admin/internal/record"
)

type category struct {
	id     record.ID
	name   string
	active record.Flag
}

func project(p *options.Projector, items []category) []options.Option {
	return options.Project(p, items,
		func(c category) bool { return bool(c.active) },
		func(c category) string { return c.name },
		func(c category) record.ID { return c.id },
	)
}

func TestProject_ActiveOnlyAscending(t *testing.T) {
	p := options.NewProjector("pt-BR")

	got := project(p, []category{
		{id: "a", name: "Z", active: true},
		{id: "b", name: "A", active: false},
		{id: "c", name: "M", active: true},
	})

	assert.Equal(t, []options.Option{
		{Label: "M", Value: "c"},
		{Label: "Z", Value: "a"},
	}, got)
}

func TestProject_LocaleAwareOrder(t *testing.T) {
	p := options.NewProjector("pt-BR")

	got := project(p, []category{
		{id: "1", name: "Viagens", active: true},
		{id: "2", name: "Água", active: true},
		{id: "3", name: "alimentação", active: true},
		{id: "4", name: "Educação", active: true},
	})

	labels := make([]string, len(got))
	for i, o := range got {
		labels[i] = o.Label
	}

	assert.Equal(t, []string{"Água", "alimentação", "Educação", "Viagens"}, labels)
}

func TestProject_NoStaleEntries(t *testing.T) {
	p := options.NewProjector("en")

	first := project(p, []category{{id: "1", name: "Old", active: true}})
	second := project(p, []category{{id: "2", name: "New", active: true}})

	assert.Len(t, first, 1)
	assert.Equal(t, []options.Option{{Label: "New", Value: "2"}}, second)
}

func TestProject_NilKeepAndBadLocale(t *testing.T) {
	p := options.NewProjector("not a locale")

	got := options.Project(p, []category{{id: "1", name: "b"}, {id: "2", name: "a"}}, nil,
		func(c category) string { return c.name },
		func(c category) record.ID { return c.id },
	)

	assert.Equal(t, []options.Option{{Label: "a", Value: "2"}, {Label: "b", Value: "1"}}, got)
}
