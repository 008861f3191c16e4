package repositories

import (
	"database/sql"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
)

type AuditRepository struct {
	DB *sql.DB
}

func (r AuditRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert writes one audit row. The table is optional in older schemas;
// when it is missing the write is skipped and reported via the bool.
func (r AuditRepository) Insert(actorID int64, action, resource, detail string) (bool, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, "audit_logs") {
		return false, nil
	}
	_, err := db.Exec(`
		INSERT INTO audit_logs (actor_id, action, resource, detail, created_at)
		VALUES (?, ?, ?, ?, NOW())
	`, actorID, action, resource, detail)
	if err != nil {
		return false, err
	}
	return true, nil
}
