package repositories

import (
	"database/sql"

	intconfig "backoffice/internal/config"
	intdb "backoffice/internal/db"
)

type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// All loads every setting. A missing app_settings table reads as empty, the
// same as an unconfigured deployment.
func (r SettingsRepository) All() (map[string]string, error) {
	db := r.db()
	out := map[string]string{}
	if db == nil || !intdb.HasTable(db, "app_settings") {
		return out, nil
	}

	rows, err := db.Query("SELECT setting_key, COALESCE(setting_value,'') FROM app_settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r SettingsRepository) Upsert(key, value string) error {
	_, err := r.db().Exec(`
		INSERT INTO app_settings (setting_key, setting_value, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE setting_value=VALUES(setting_value), updated_at=NOW()
	`, key, value)
	return err
}
