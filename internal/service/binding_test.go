package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/devxconsultancy/assess-ui-api/internal/domain/auth"
	"github.com/devxconsultancy/assess-ui-api/internal/domain/model"
	mockauth "github.com/devxconsultancy/assess-ui-api/internal/mocks/auth"
)

func newCollege(name, slug, domain string) *model.College {
	now := time.Now().UTC()
	return &model.College{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		EmailDomain: domain,
		Status:      model.CollegeStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestBindingEngineFirstBind(t *testing.T) {
	users := mockauth.NewMemoryUserRepository()
	engine := NewBindingEngine(users)
	acme := newCollege("Acme Engineering College", "acme", "acme.edu")

	bound, err := engine.Bind(context.Background(), "bob@acme.edu", "Bob", acme)
	require.NoError(t, err)
	require.NotNil(t, bound.College)
	assert.Equal(t, acme.ID, bound.College.CollegeID)
	assert.Equal(t, "acme", bound.College.CollegeSlug)
	assert.Equal(t, "acme.edu", bound.College.EmailDomain)
	assert.Equal(t, domainauth.RoleCandidate, bound.Role)
}

func TestBindingEngineRejectsMismatchedDomain(t *testing.T) {
	users := mockauth.NewMemoryUserRepository()
	engine := NewBindingEngine(users)
	acme := newCollege("Acme Engineering College", "acme", "acme.edu")

	_, err := engine.Bind(context.Background(), "bob@other.edu", "Bob", acme)
	require.Error(t, err)

	var mismatch *DomainMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "acme.edu", mismatch.RequiredDomain)
	assert.Contains(t, mismatch.Error(), "acme.edu")

	_, err = users.GetByEmail(context.Background(), "bob@other.edu")
	require.Error(t, err, "rejected bind must not create a user")
}

func TestBindingEngineIdempotentRebind(t *testing.T) {
	users := mockauth.NewMemoryUserRepository()
	engine := NewBindingEngine(users)
	acme := newCollege("Acme Engineering College", "acme", "acme.edu")
	ctx := context.Background()

	first, err := engine.Bind(ctx, "bob@acme.edu", "Bob", acme)
	require.NoError(t, err)

	second, err := engine.Bind(ctx, "bob@acme.edu", "Bob", acme)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.College, second.College)
}

func TestBindingEngineImmutableBinding(t *testing.T) {
	users := mockauth.NewMemoryUserRepository()
	engine := NewBindingEngine(users)
	ctx := context.Background()

	acme := newCollege("Acme Engineering College", "acme", "acme.edu")
	// beta claims the same email domain in this scenario; the registry
	// forbids that in production, so construct the record directly.
	beta := newCollege("Beta Institute", "beta", "acme.edu")

	_, err := engine.Bind(ctx, "bob@acme.edu", "Bob", acme)
	require.NoError(t, err)

	_, err = engine.Bind(ctx, "bob@acme.edu", "Bob", beta)
	require.Error(t, err)

	var conflict *CollegeConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "acme", conflict.ExistingSlug)
	assert.Equal(t, "beta", conflict.RequestedSlug)
	assert.Contains(t, conflict.Error(), "acme")

	stored, err := users.GetByEmail(ctx, "bob@acme.edu")
	require.NoError(t, err)
	require.NotNil(t, stored.College)
	assert.Equal(t, acme.ID, stored.College.CollegeID, "stored binding is never altered by a conflict")
}

func TestBindingEngineConcurrentFirstBindOneWinner(t *testing.T) {
	users := mockauth.NewMemoryUserRepository()
	engine := NewBindingEngine(users)
	ctx := context.Background()

	acme := newCollege("Acme Engineering College", "acme", "shared.edu")
	beta := newCollege("Beta Institute", "beta", "shared.edu")

	const rounds = 50
	for range rounds {
		users = mockauth.NewMemoryUserRepository()
		engine = NewBindingEngine(users)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, college := range []*model.College{acme, beta} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = engine.Bind(ctx, "bob@shared.edu", "Bob", college)
			}()
		}
		wg.Wait()

		var conflicts int
		for _, err := range errs {
			if err == nil {
				continue
			}
			var conflict *CollegeConflictError
			require.True(t, errors.As(err, &conflict), "unexpected error: %v", err)
			conflicts++
		}
		require.Equal(t, 1, conflicts, "exactly one bind wins")

		stored, err := users.GetByEmail(ctx, "bob@shared.edu")
		require.NoError(t, err)
		require.NotNil(t, stored.College, "store ends with exactly one binding")
	}
}
