package repositories

import (
	"database/sql"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain/models"
	"backoffice/internal/pagination"
)

type CreditRepository struct {
	DB *sql.DB
}

func (r CreditRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns one page of ledger rows, newest first. userID 0 means all users.
func (r CreditRepository) List(userID int64, p pagination.Pagination) ([]models.CreditTransaction, int64, error) {
	db := r.db()

	where := ""
	args := []any{}
	if userID > 0 {
		where = " WHERE user_id=?"
		args = append(args, userID)
	}

	var total int64
	if err := db.QueryRow("SELECT COUNT(*) FROM credit_transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, amount, COALESCE(reason,''), COALESCE(actor_id,0), created_at
		FROM credit_transactions` + where + ` ORDER BY id DESC LIMIT ? OFFSET ?`
	args = append(args, p.PerPage, p.Offset())
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.CreditTransaction{}
	for rows.Next() {
		var tx models.CreditTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Reason, &tx.ActorID, &tx.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, tx)
	}
	return out, total, rows.Err()
}

// Insert appends one ledger row. Single statement; the ledger is the
// authoritative record, the users.credits column is a denormalized mirror.
func (r CreditRepository) Insert(userID, amount, actorID int64, reason string) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO credit_transactions (user_id, amount, reason, actor_id, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, userID, amount, reason, actorID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SyncBalance refreshes the denormalized balance for one user. Best effort;
// callers log and continue on failure.
func (r CreditRepository) SyncBalance(userID int64) error {
	_, err := r.db().Exec(`
		UPDATE users
		SET credits = (SELECT COALESCE(SUM(amount),0) FROM credit_transactions WHERE user_id=?)
		WHERE id=?
	`, userID, userID)
	return err
}
