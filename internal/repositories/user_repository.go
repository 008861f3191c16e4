package repositories

import (
	"database/sql"
	"strings"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
	"backoffice/internal/pagination"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	id,
	COALESCE(name,''),
	COALESCE(email,''),
	COALESCE(password_hash,''),
	COALESCE(role,'user'),
	COALESCE(status,'active'),
	COALESCE(credits,0),
	created_at,
	updated_at`

// List returns one page of users plus the unpaginated total. q filters by
// name or email substring.
func (r UserRepository) List(q string, p pagination.Pagination) ([]models.User, int64, error) {
	db := r.db()

	where := ""
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = " WHERE (name LIKE ? OR email LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	var total int64
	if err := db.QueryRow("SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT" + userColumns + " FROM users" + where + " ORDER BY id DESC LIMIT ? OFFSET ?"
	args = append(args, p.PerPage, p.Offset())
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Credits, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRow("SELECT"+userColumns+" FROM users WHERE id=? LIMIT 1", id).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Credits, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRow("SELECT"+userColumns+" FROM users WHERE email=? LIMIT 1", strings.TrimSpace(email)).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &u.Credits, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepository) Create(name, email, passwordHash, role string) (int64, error) {
	var exists int
	if err := r.db().QueryRow("SELECT COUNT(*) FROM users WHERE email=?", email).Scan(&exists); err != nil {
		return 0, err
	}
	if exists > 0 {
		return 0, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	res, err := r.db().Exec(`
		INSERT INTO users (name, email, password_hash, role, status, credits, created_at, updated_at)
		VALUES (?, ?, ?, ?, 'active', 0, NOW(), NOW())
	`, name, email, passwordHash, role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UserPatch carries optional field updates; nil means "leave unchanged".
type UserPatch struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

func (r UserRepository) Update(id int64, patch UserPatch) error {
	sets := []string{}
	args := []any{}
	if patch.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, strings.TrimSpace(*patch.Name))
	}
	if patch.Role != nil {
		sets = append(sets, "role=?")
		args = append(args, strings.TrimSpace(*patch.Role))
	}
	if patch.Status != nil {
		sets = append(sets, "status=?")
		args = append(args, strings.TrimSpace(*patch.Status))
	}
	if len(sets) == 0 {
		return domain.ValidationError{Msg: "no updatable fields in payload"}
	}
	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	res, err := r.db().Exec("UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

func (r UserRepository) Delete(id int64) error {
	res, err := r.db().Exec("DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
