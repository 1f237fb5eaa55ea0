package movement

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orgdesk/admin/internal/record"
)

// Type represents the direction of a movement (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Movement is one entry in an account's ledger. Date uses the
// "dd-mm-yyyy hh:mm:ss" layout the backend emits.
type Movement struct {
	ID          record.ID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Date        string          `json:"date"`
	AccountID   record.ID       `json:"account_id"`
	CategoryID  record.ID       `json:"category_id"`
	Paid        record.Flag     `json:"paid"`
}

type CreateParams struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Date        string          `json:"date"`
	AccountID   record.ID       `json:"account_id"`
	CategoryID  record.ID       `json:"category_id"`
	Paid        bool            `json:"paid"`
}

// ListFilter narrows a load. Zero fields are left out of the query.
type ListFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	AccountID  record.ID
	CategoryID record.ID
	Type       Type
	Paid       *bool
}

const filterDateLayout = "2006-01-02"

// Values encodes the filter as query parameters.
func (f ListFilter) Values() url.Values {
	v := url.Values{}

	if f.StartDate != nil {
		v.Set("start_date", f.StartDate.Format(filterDateLayout))
	}

	if f.EndDate != nil {
		v.Set("end_date", f.EndDate.Format(filterDateLayout))
	}

	if !f.AccountID.IsZero() {
		v.Set("account_id", f.AccountID.String())
	}

	if !f.CategoryID.IsZero() {
		v.Set("category_id", f.CategoryID.String())
	}

	if f.Type != "" {
		v.Set("type", string(f.Type))
	}

	if f.Paid != nil {
		if *f.Paid {
			v.Set("paid", "1")
		} else {
			v.Set("paid", "0")
		}
	}

	return v
}

// Totals summarizes a collection of movements.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func computeTotals(items []Movement) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}

	for _, m := range items {
		switch m.Type {
		case TypeIncome:
			t.Income = t.Income.Add(m.Amount.Abs())
		case TypeExpense:
			t.Expense = t.Expense.Add(m.Amount.Abs())
		}
	}

	t.Balance = t.Income.Sub(t.Expense)

	return t
}
