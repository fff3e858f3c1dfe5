package schema

// AccountsTable represents the 'accounts' table
type AccountsTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    string
}

// Accounts is the schema definition for accounts
var Accounts = AccountsTable{
	Table:        "accounts",
	ID:           "account_id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	CreatedAt:    "created_at",
}

// Columns lists every column in scan order.
func (t AccountsTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.PasswordHash, t.CreatedAt}
}
