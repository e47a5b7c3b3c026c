package domain

// User is an authenticated operator. Identity only feeds audit fields
// (created_by); it has no influence on ledger invariants.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // empty for external (Google) identities
	AuthProvider string `json:"authProvider"` // "local" or "google"
	ProviderID   string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// GoogleUserInfo is the subset of the Google ID-token payload we consume.
type GoogleUserInfo struct {
	Subject string
	Email   string
	Name    string
}
