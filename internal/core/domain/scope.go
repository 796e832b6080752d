package domain

// Permission codes checked by the ledger services.
const (
	PermAll           = "*"
	PermAccountsView  = "ACC.COA.VIEW"
	PermAccountsEdit  = "ACC.COA.EDIT"
	PermFiscalView    = "ACC.FISCAL.VIEW"
	PermJournalView   = "ACC.JE.VIEW"
	PermJournalCreate = "ACC.JE.CREATE"
	PermJournalPost   = "ACC.JE.POST"
)

// RequestScope identifies who is acting, for which company, and with which permissions.
// It is built once per request and passed explicitly into every service call.
type RequestScope struct {
	CompanyID   string
	UserID      string
	Permissions []string
}

// Has reports whether the scope grants perm, either directly or through PermAll.
func (s RequestScope) Has(perm string) bool {
	for _, p := range s.Permissions {
		if p == perm || p == PermAll {
			return true
		}
	}
	return false
}
