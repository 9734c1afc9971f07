package models

// AccountType mirrors domain.AccountType at the persistence boundary.
type AccountType string

// Account is the db row for one chart-of-accounts entry.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	AuditFields
}
