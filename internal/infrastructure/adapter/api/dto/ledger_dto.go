package dto

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID  int64 `json:"userId"`
	Balance int64 `json:"balance"`
}

// RegisterResponse reports whether a registration created a new user
type RegisterResponse struct {
	UserID  int64 `json:"userId"`
	Created bool  `json:"created"`
}

// TokensRequest is the body for credit and debit operations
type TokensRequest struct {
	Tokens int64 `json:"tokens" binding:"min=0"`
}

// CreditResponse returns the balance after a credit
type CreditResponse struct {
	UserID  int64 `json:"userId"`
	Balance int64 `json:"balance"`
}

// DebitResponse reports whether a debit was applied
type DebitResponse struct {
	UserID  int64 `json:"userId"`
	Success bool  `json:"success"`
}

// CountResponse returns the number of registered users
type CountResponse struct {
	Count int64 `json:"count"`
}

// UserIDsResponse enumerates all user identifiers
type UserIDsResponse struct {
	UserIDs []int64 `json:"userIds"`
}
