package repositories

import (
	"database/sql"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain/models"
	"backoffice/internal/pagination"
)

type UsageRepository struct {
	DB *sql.DB
}

func (r UsageRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Aggregate returns per-user usage totals, heaviest consumers first, plus the
// number of distinct users with any usage.
func (r UsageRepository) Aggregate(p pagination.Pagination) ([]models.UsageRow, int64, error) {
	db := r.db()

	var total int64
	if err := db.QueryRow("SELECT COUNT(DISTINCT user_id) FROM api_usage").Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := db.Query(`
		SELECT u.id,
		       COALESCE(u.email,''),
		       COUNT(a.id),
		       COALESCE(SUM(a.credits_spent),0),
		       COALESCE(MAX(DATE_FORMAT(a.created_at, '%Y-%m-%d %H:%i:%s')),'')
		FROM api_usage a
		JOIN users u ON u.id = a.user_id
		GROUP BY u.id, u.email
		ORDER BY SUM(a.credits_spent) DESC, u.id
		LIMIT ? OFFSET ?
	`, p.PerPage, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.UsageRow{}
	for rows.Next() {
		var row models.UsageRow
		if err := rows.Scan(&row.UserID, &row.Email, &row.Requests, &row.CreditsSpent, &row.LastUsedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, row)
	}
	return out, total, rows.Err()
}
