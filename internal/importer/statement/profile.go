package statement

import "strings"

// role is what a column holds.
type role int

const (
	roleDate role = iota
	roleDescription
	roleAmount // one signed column
	roleDebit  // debit/credit pair
	roleCredit
)

// Profile is the header layout of one bank's export.
type Profile struct {
	Name    string
	Headers map[role]string
	// DecimalPoint is set for exports that write "1,234.56" instead of
	// "1.234,56".
	DecimalPoint bool
}

// positions maps every role of the profile to its column in header, or
// reports false when a header is missing.
func (p Profile) positions(header []string) (map[role]int, bool) {
	seen := make(map[string]int, len(header))

	for i, cell := range header {
		if name := strings.TrimSpace(cell); name != "" {
			seen[name] = i
		}
	}

	pos := make(map[role]int, len(p.Headers))

	for r, name := range p.Headers {
		i, ok := seen[name]
		if !ok {
			return nil, false
		}

		pos[r] = i
	}

	return pos, true
}

func (p Profile) split() bool {
	_, ok := p.Headers[roleDebit]
	return ok
}

// profiles are tried in order; the split layout goes first since its
// headers are a superset of the plain "Data"/"Descrição" ones.
var profiles = []Profile{
	{
		Name: "cartão",
		Headers: map[role]string{
			roleDate:        "Data",
			roleDescription: "Descrição",
			roleDebit:       "Débito",
			roleCredit:      "Crédito",
		},
	},
	{
		Name: "extrato",
		Headers: map[role]string{
			roleDate:        "Data",
			roleDescription: "Histórico",
			roleAmount:      "Valor",
		},
	},
	{
		Name: "movimento",
		Headers: map[role]string{
			roleDate:        "Data mov.",
			roleDescription: "Descrição",
			roleAmount:      "Montante",
		},
	},
	{
		Name: "lançamentos",
		Headers: map[role]string{
			roleDate:        "Data Lançamento",
			roleDescription: "Descrição",
			roleAmount:      "Valor",
		},
	},
	{
		Name: "statement",
		Headers: map[role]string{
			roleDate:        "Date",
			roleDescription: "Description",
			roleAmount:      "Amount",
		},
		DecimalPoint: true,
	},
}
