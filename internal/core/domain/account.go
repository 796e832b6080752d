package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's balance is conventionally positive.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DR"
	NormalCredit NormalBalance = "CR"
)

// IsValid reports whether b is DR or CR.
func (b NormalBalance) IsValid() bool {
	return b == NormalDebit || b == NormalCredit
}

// Account is a node in a company's chart of accounts.
type Account struct {
	AccountID       string        `json:"accountID"`
	CompanyID       string        `json:"companyID"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	ParentAccountID *string       `json:"parentAccountID,omitempty"`
	IsPosting       bool          `json:"isPosting"`     // leaf accounts that may receive journal lines
	NormalBalance   NormalBalance `json:"normalBalance"` // DR or CR
	Level           int           `json:"level"`
	IsActive        bool          `json:"isActive"`
	AuditFields
}

// Label renders the account as "code - name", the form used in rejection messages.
func (a Account) Label() string {
	return a.Code + " - " + a.Name
}

// CanReceiveLines reports whether journal lines may be posted to the account.
func (a Account) CanReceiveLines() bool {
	return a.IsActive && a.IsPosting
}
