package models

import "time"

// CreditTransaction is one row of the credit ledger. Amount is positive for
// grants and negative for spend; the ledger is append-only.
type CreditTransaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	ActorID   int64     `json:"actor_id"`
	CreatedAt time.Time `json:"created_at"`
}
