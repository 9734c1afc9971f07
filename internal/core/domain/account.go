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

// AccountTypes lists every valid account type, in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Income, Expense}

// Account represents one bucket in the chart of accounts.
// Code is the stable business key ("570", "700", ...); it never changes once
// an entry line references the account.
type Account struct {
	AccountID   string      `json:"accountID"` // Primary key (UUID)
	Code        string      `json:"code"`      // Unique, immutable business key
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	AuditFields
}

// Well-known account codes seeded at bootstrap. Callers reference accounts by
// these constants rather than raw strings.
const (
	CodeCash        = "570"
	CodeBank        = "572"
	CodeInventory   = "300"
	CodeReceivables = "430"
	CodePayables    = "400"
	CodeTaxPayable  = "475"
	CodeCapital     = "100"
	CodeSales       = "700"
	CodePurchases   = "600"
	CodeUtilities   = "628"
	CodeImpairment  = "693"
)

// SeedAccount describes one row of the bootstrap chart of accounts.
type SeedAccount struct {
	Code        string
	Name        string
	AccountType AccountType
}

// ChartOfAccounts is the minimal account set every installation carries.
// Seeding is idempotent: codes already present are left untouched.
var ChartOfAccounts = []SeedAccount{
	{Code: CodeCash, Name: "Cash", AccountType: Asset},
	{Code: CodeBank, Name: "Bank", AccountType: Asset},
	{Code: CodeInventory, Name: "Merchandise Inventory", AccountType: Asset},
	{Code: CodeReceivables, Name: "Accounts Receivable", AccountType: Asset},
	{Code: CodePayables, Name: "Accounts Payable", AccountType: Liability},
	{Code: CodeTaxPayable, Name: "Tax Payable", AccountType: Liability},
	{Code: CodeCapital, Name: "Share Capital", AccountType: Equity},
	{Code: CodeSales, Name: "Merchandise Sales", AccountType: Income},
	{Code: CodePurchases, Name: "Merchandise Purchases", AccountType: Expense},
	{Code: CodeUtilities, Name: "Utilities", AccountType: Expense},
	{Code: CodeImpairment, Name: "Impairment Losses", AccountType: Expense},
}
