package data

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	apperrors "github.com/devxconsultancy/assess-ui-api/internal/errors"
	"github.com/devxconsultancy/assess-ui-api/internal/testutil"
)

func TestCollegeRepoCreateAndLookups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCollegeRepo(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.CreateCollegeRequest{
		Name:        "Acme Engineering College",
		Slug:        "acme-engineering",
		EmailDomain: "acme.edu",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, model.CollegeStatusActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	bySlug, err := repo.GetBySlug(ctx, "acme-engineering")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Slug, byID.Slug)

	byDomain, err := repo.GetByEmailDomain(ctx, "acme.edu")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byDomain.ID)
}

func TestCollegeRepoNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCollegeRepo(db)
	ctx := context.Background()

	_, err := repo.GetBySlug(ctx, "no-such-college")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = repo.GetByEmailDomain(ctx, "nowhere.edu")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCollegeRepoUniqueSlugAndDomain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCollegeRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.CreateCollegeRequest{
		Name:        "Acme Engineering College",
		Slug:        "acme-engineering",
		EmailDomain: "acme.edu",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.CreateCollegeRequest{
		Name:        "Acme Clone",
		Slug:        "acme-engineering",
		EmailDomain: "acme-clone.edu",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err), "duplicate slug should conflict")

	_, err = repo.Create(ctx, &model.CreateCollegeRequest{
		Name:        "Acme Clone",
		Slug:        "acme-clone",
		EmailDomain: "acme.edu",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err), "duplicate email domain should conflict")
}

func TestCollegeRepoCreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCollegeRepo(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.CreateCollegeRequest{
		Name:        "Bad Domain College",
		Slug:        "bad-domain",
		EmailDomain: "someone@bad.edu",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = repo.Create(ctx, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCollegeRepoList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCollegeRepo(db)
	ctx := context.Background()

	for _, c := range []struct{ name, slug, domain string }{
		{"Zenith College", "zenith", "zenith.edu"},
		{"Acme Engineering College", "acme-engineering", "acme.edu"},
		{"Midland University", "midland", "midland.edu"},
	} {
		_, err := repo.Create(ctx, &model.CreateCollegeRequest{Name: c.name, Slug: c.slug, EmailDomain: c.domain})
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "acme-engineering", all[0].Slug, "list is ordered by slug")
	assert.Equal(t, "zenith", all[2].Slug)

	page, err := repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "zenith", page[0].Slug)
}

func TestCollegeRepoListResources(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewCollegeRepo(db)
	ctx := context.Background()

	college, err := repo.Create(ctx, &model.CreateCollegeRequest{
		Name:        "Acme Engineering College",
		Slug:        "acme-engineering",
		EmailDomain: "acme.edu",
	})
	require.NoError(t, err)

	for _, name := range []string{"backend-assessment", "aptitude-round"} {
		_, execErr := db.ExecContext(ctx,
			`INSERT INTO college_resources (college_id, name) VALUES ($1, $2)`, college.ID, name)
		require.NoError(t, execErr)
	}

	resources, err := repo.ListResources(ctx, college.ID)
	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "aptitude-round", resources[0].Name, "resources are ordered by name")
	assert.Equal(t, college.ID, resources[0].CollegeID)

	empty, err := repo.ListResources(ctx, "00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
