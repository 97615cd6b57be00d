package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	"github.com/devxconsultancy/assess-ui-api/internal/data/pgxutil"
	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
)

const userColumns = `id, email, username, role, college_id, college_slug, email_domain, created_at, last_login_at`

const (
	userGetByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	userGetByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	userInsertQuery = `
		INSERT INTO users (email, username, role)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	// userBindQuery is the conditional upsert behind BindCollege. On
	// conflict the binding columns keep their current value when already
	// set; only an unbound row adopts the incoming college. Concurrent
	// first binds for the same email therefore resolve to exactly one
	// winner, and the returned row always shows the stored binding.
	userBindQuery = `
		INSERT INTO users (email, username, role, college_id, college_slug, email_domain)
		VALUES ($1, $2, 'candidate', $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			college_id = COALESCE(users.college_id, EXCLUDED.college_id),
			college_slug = COALESCE(users.college_slug, EXCLUDED.college_slug),
			email_domain = COALESCE(users.email_domain, EXCLUDED.email_domain),
			last_login_at = now()
		RETURNING ` + userColumns

	userTouchLoginQuery = `UPDATE users SET last_login_at = now() WHERE id = $1`
	userDeleteQuery     = `DELETE FROM users WHERE id = $1`
)

// userRow is the flat database shape of a user. The binding columns are
// nullable; toUser folds them into the nested model binding.
type userRow struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	Username    string    `db:"username"`
	Role        string    `db:"role"`
	CollegeID   *string   `db:"college_id"`
	CollegeSlug *string   `db:"college_slug"`
	EmailDomain *string   `db:"email_domain"`
	CreatedAt   time.Time `db:"created_at"`
	LastLoginAt time.Time `db:"last_login_at"`
}

func (row *userRow) toUser() *model.User {
	u := &model.User{
		ID:          row.ID,
		Email:       row.Email,
		Username:    row.Username,
		Role:        domainauth.Role(row.Role),
		CreatedAt:   row.CreatedAt,
		LastLoginAt: row.LastLoginAt,
	}
	if row.CollegeID != nil && row.CollegeSlug != nil && row.EmailDomain != nil {
		u.College = &model.CollegeBinding{
			CollegeID:   *row.CollegeID,
			CollegeSlug: *row.CollegeSlug,
			EmailDomain: *row.EmailDomain,
		}
	}
	return u
}

// UserRepo provides database operations for users.
type UserRepo struct {
	DB *sql.DB
}

var _ core.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByEmail retrieves a user by email. Lookup is case-insensitive because
// stored emails are normalized to lowercase.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByEmailQuery, normalizeEmail(email))
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, id)
}

func (r *UserRepo) getByQuery(ctx context.Context, query, arg string) (*model.User, error) {
	row, err := r.queryOne(ctx, query, arg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", apperrors.MapDBError(err))
	}
	return row.toUser(), nil
}

// CreateStaff inserts a staff or admin user without a college binding.
func (r *UserRepo) CreateStaff(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, apperrors.Validation("user is required")
	}
	if user.Role != domainauth.RoleStaff && user.Role != domainauth.RoleAdmin {
		return nil, apperrors.Validationf("role %q is not an organizational role", user.Role)
	}
	return r.insert(ctx, user)
}

// CreateCandidate inserts an unbound candidate user.
func (r *UserRepo) CreateCandidate(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, apperrors.Validation("user is required")
	}
	if user.Role != domainauth.RoleCandidate {
		return nil, apperrors.Validationf("role %q is not candidate", user.Role)
	}
	return r.insert(ctx, user)
}

func (r *UserRepo) insert(ctx context.Context, user *model.User) (*model.User, error) {
	email := normalizeEmail(user.Email)
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}

	row, err := r.queryOne(ctx, userInsertQuery, email, strings.TrimSpace(user.Username), string(user.Role))
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflictf("user %s already exists", email)
		}
		return nil, fmt.Errorf("create user: %w", apperrors.MapDBError(err))
	}
	return row.toUser(), nil
}

// BindCollege atomically creates-or-binds the candidate row for the email.
// See userBindQuery for the one-winner guarantee. The caller is responsible
// for comparing the returned binding against the requested college.
func (r *UserRepo) BindCollege(ctx context.Context, params core.BindCollegeParams) (*model.User, error) {
	email := normalizeEmail(params.Email)
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}
	if params.College == nil {
		return nil, apperrors.Validation("college is required")
	}

	row, err := r.queryOne(ctx, userBindQuery,
		email,
		strings.TrimSpace(params.Username),
		params.College.ID,
		params.College.Slug,
		params.College.EmailDomain,
	)
	if err != nil {
		return nil, fmt.Errorf("bind college: %w", apperrors.MapDBError(err))
	}
	return row.toUser(), nil
}

// TouchLogin updates last_login_at for an existing user.
func (r *UserRepo) TouchLogin(ctx context.Context, id string) error {
	return r.exec(ctx, "touch login", userTouchLoginQuery, id)
}

// Delete removes a user row entirely.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, "delete user", userDeleteQuery, id)
}

func (r *UserRepo) exec(ctx context.Context, op, query, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, err := conn.Exec(ctx, query, id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	}); err != nil {
		return fmt.Errorf("%s: %w", op, apperrors.MapDBError(err))
	}
	if affected == 0 {
		return apperrors.NotFound("user not found")
	}
	return nil
}

func (r *UserRepo) queryOne(ctx context.Context, query string, args ...any) (*userRow, error) {
	var out userRow
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
		return err
	}); err != nil {
		return nil, err
	}
	return &out, nil
}
