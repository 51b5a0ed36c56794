package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/timesheet-tracker/internal"
	userDatamodel "github.com/frahmantamala/timesheet-tracker/internal/core/datamodel/user"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/user"
)

const userColumns = `id, email, username, full_name, password_hash, role, is_active, created_at`

// UserRepository is the identity and credential store.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ user.Repository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	row := user.ToDataModel(u)
	query := r.db.Rebind(`INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.Email, row.Username, row.FullName, row.PasswordHash, row.Role, row.IsActive, row.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return internal.ErrUserExists.WithCause(err)
		}
		return internal.NewUnavailableError("failed to insert user", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var row userDatamodel.User
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewUnavailableError("failed to query user", err)
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(1) FROM users WHERE email = ? OR username = ?`)
	if err := r.db.GetContext(ctx, &count, query, email, username); err != nil {
		return false, internal.NewUnavailableError("failed to check user existence", err)
	}
	return count > 0, nil
}

// List returns users ordered by creation time; an empty role means all roles.
func (r *UserRepository) List(ctx context.Context, role coreUser.Role) ([]*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []interface{}
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, string(role))
	}
	query += ` ORDER BY created_at ASC`

	var rows []*userDatamodel.User
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, internal.NewUnavailableError("failed to list users", err)
	}
	return user.FromDataModelSlice(rows), nil
}

func (r *UserRepository) CountByRole(ctx context.Context, role coreUser.Role) (int, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(1) FROM users WHERE role = ?`)
	if err := r.db.GetContext(ctx, &count, query, string(role)); err != nil {
		return 0, internal.NewUnavailableError("failed to count users", err)
	}
	return count, nil
}

// isUniqueViolation recognises postgres SQLSTATE 23505 and the sqlite
// constraint message used by the in-memory test database.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
