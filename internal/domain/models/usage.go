package models

// UsageRow is a per-user aggregate over the api_usage table.
type UsageRow struct {
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	Requests     int64  `json:"requests"`
	CreditsSpent int64  `json:"credits_spent"`
	LastUsedAt   string `json:"last_used_at"`
}

// AuditLog records one admin mutation. Single-statement insert, no
// cross-table transaction.
type AuditLog struct {
	ID       int64  `json:"id"`
	ActorID  int64  `json:"actor_id"`
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Detail   string `json:"detail"`
}
