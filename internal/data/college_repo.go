package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devxconsultancy/assess-ui-api/internal/core"
	"github.com/devxconsultancy/assess-ui-api/internal/data/pgxutil"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
)

const collegeColumns = `id, name, slug, email_domain, status, created_at, updated_at`

const (
	collegeGetBySlugQuery = `SELECT ` + collegeColumns + ` FROM colleges WHERE slug = $1`
	collegeGetByIDQuery   = `SELECT ` + collegeColumns + ` FROM colleges WHERE id = $1`
	collegeGetByDomain    = `SELECT ` + collegeColumns + ` FROM colleges WHERE email_domain = $1`
	collegeListQuery      = `SELECT ` + collegeColumns + ` FROM colleges ORDER BY slug LIMIT $1 OFFSET $2`

	collegeInsertQuery = `
		INSERT INTO colleges (name, slug, email_domain, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + collegeColumns

	collegeResourcesQuery = `
		SELECT id, college_id, name, created_at
		FROM college_resources
		WHERE college_id = $1
		ORDER BY name`

	collegeResourceInsertQuery = `
		INSERT INTO college_resources (college_id, name)
		VALUES ($1, $2)
		RETURNING id, college_id, name, created_at`
)

// CollegeRepo provides database operations for colleges.
type CollegeRepo struct {
	DB *sql.DB
}

var _ core.CollegeRepository = (*CollegeRepo)(nil)

// NewCollegeRepo creates a new CollegeRepo.
func NewCollegeRepo(db *sql.DB) *CollegeRepo {
	return &CollegeRepo{DB: db}
}

// GetBySlug retrieves a college by its URL slug.
func (r *CollegeRepo) GetBySlug(ctx context.Context, slug string) (*model.College, error) {
	return r.getByQuery(ctx, collegeGetBySlugQuery, slug)
}

// GetByID retrieves a college by ID.
func (r *CollegeRepo) GetByID(ctx context.Context, id string) (*model.College, error) {
	return r.getByQuery(ctx, collegeGetByIDQuery, id)
}

// GetByEmailDomain retrieves the college that owns the given email domain.
func (r *CollegeRepo) GetByEmailDomain(ctx context.Context, domain string) (*model.College, error) {
	return r.getByQuery(ctx, collegeGetByDomain, domain)
}

func (r *CollegeRepo) getByQuery(ctx context.Context, query, arg string) (*model.College, error) {
	var out model.College
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.College])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("college not found")
		}
		return nil, fmt.Errorf("get college: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ListResources returns the resources available to a college's members.
func (r *CollegeRepo) ListResources(ctx context.Context, collegeID string) ([]*model.CollegeResource, error) {
	var rowsOut []model.CollegeResource
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, collegeResourcesQuery, collegeID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CollegeResource])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list college resources: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.CollegeResource, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// AddResource assigns a named resource to a college.
func (r *CollegeRepo) AddResource(ctx context.Context, collegeID, name string) (*model.CollegeResource, error) {
	if collegeID == "" || name == "" {
		return nil, apperrors.Validation("college id and resource name are required")
	}

	var out model.CollegeResource
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, collegeResourceInsertQuery, collegeID, name)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CollegeResource])
		return err
	}); err != nil {
		return nil, fmt.Errorf("add college resource: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Create inserts a new college. Slug and email domain collisions surface as
// conflict errors.
func (r *CollegeRepo) Create(ctx context.Context, req *model.CreateCollegeRequest) (*model.College, error) {
	if req == nil {
		return nil, apperrors.Validation("create college request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.College
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, collegeInsertQuery, req.Name, req.Slug, req.EmailDomain, req.Status)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.College])
		return err
	}); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("college slug or email domain already registered")
		}
		return nil, fmt.Errorf("create college: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves colleges with pagination, ordered by slug.
func (r *CollegeRepo) List(ctx context.Context, limit, offset int) ([]*model.College, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.College
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, collegeListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.College])
		return err
	}); err != nil {
		return nil, fmt.Errorf("list colleges: %w", apperrors.MapDBError(err))
	}

	res := make([]*model.College, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
