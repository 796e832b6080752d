package models

// Account is a row of the accounts table.
type Account struct {
	AccountID       string  `db:"account_id"`
	CompanyID       string  `db:"company_id"`
	Code            string  `db:"account_code"`
	Name            string  `db:"account_name"`
	AccountType     string  `db:"account_type"`
	ParentAccountID *string `db:"parent_account_id"` // Nullable
	IsPosting       bool    `db:"is_posting"`
	NormalBalance   string  `db:"normal_balance"` // DR or CR
	Level           int16   `db:"level"`
	IsActive        bool    `db:"is_active"`
	IsDeleted       bool    `db:"is_deleted"`
	AuditFields
}
