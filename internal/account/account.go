package account

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/orgdesk/admin/internal/record"
)

// Account is a bank account held by the enterprise.
type Account struct {
	ID            record.ID       `json:"id"`
	Name          string          `json:"name"`
	Bank          string          `json:"bank,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	AgencyNumber  string          `json:"agency_number,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Active        record.Flag     `json:"active"`
}

// Label is how an account is shown in selection lists. Account and agency
// numbers are appended only when both are known.
func (a Account) Label() string {
	if a.AccountNumber == "" || a.AgencyNumber == "" {
		return a.Name
	}

	return fmt.Sprintf("%s - Account № %s / Agency № %s", a.Name, a.AccountNumber, a.AgencyNumber)
}

// CreateParams is the payload for creating or updating an account.
type CreateParams struct {
	Name          string          `json:"name"`
	Bank          string          `json:"bank,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	AgencyNumber  string          `json:"agency_number,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Active        bool            `json:"active"`
}
