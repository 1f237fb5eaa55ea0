package category

import (
	"github.com/orgdesk/admin/internal/record"
)

// Type says which side of the ledger a category applies to.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Category classifies movements. Categories nest through ParentID.
type Category struct {
	ID       record.ID   `json:"id"`
	Name     string      `json:"name"`
	Type     Type        `json:"type,omitempty"`
	ParentID record.ID   `json:"parent_id"`
	Active   record.Flag `json:"active"`
}

type CreateParams struct {
	Name     string    `json:"name"`
	Type     Type      `json:"type,omitempty"`
	ParentID record.ID `json:"parent_id"`
	Active   bool      `json:"active"`
}
