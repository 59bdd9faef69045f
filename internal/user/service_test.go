package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/hotel-ops-backend/internal/auth"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*User)
	return u, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepo) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	return m.Called(ctx, id, t).Error(0)
}

func (m *mockRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*User)
	return users, args.Int(1), args.Error(2)
}

func newTestService(repo Repository) *service {
	s := NewService(repo, auth.NewBcryptPasswordHasherWithCost(4), zap.NewNop()).(*service)
	s.now = func() time.Time { return time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC) }
	return s
}

func TestRegister(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByEmail", mock.Anything, "guest@example.com").Return(nil, ErrNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Email == "guest@example.com" && u.Role == RoleCustomer && u.IsActive && u.PasswordHash != "longenough"
	})).Return(nil)

	u, err := newTestService(repo).Register(context.Background(), " Ada ", "  Guest@Example.com ", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, RoleCustomer, u.Role)
	repo.AssertExpectations(t)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		existing bool
		wantErr  error
	}{
		{"empty email", "  ", "longenough", false, ErrEmailRequired},
		{"short password", "a@b.io", "short", false, ErrPasswordTooShort},
		{"duplicate email", "a@b.io", "longenough", true, ErrEmailAlreadyUsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			if tt.existing {
				repo.On("GetByEmail", mock.Anything, "a@b.io").Return(&User{ID: "1"}, nil)
			}

			_, err := newTestService(repo).Register(context.Background(), "n", tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateStaff_RejectsCustomerRole(t *testing.T) {
	repo := new(mockRepo)

	_, err := newTestService(repo).CreateStaff(context.Background(), "n", "a@b.io", "longenough", RoleCustomer)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = newTestService(repo).CreateStaff(context.Background(), "n", "a@b.io", "longenough", Role("janitor"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLogin(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)
	active := &User{ID: "u1", Email: "fd@hotel.io", PasswordHash: hash, Role: RoleFrontDesk, IsActive: true}
	inactive := &User{ID: "u2", Email: "old@hotel.io", PasswordHash: hash, IsActive: false}

	t.Run("success updates last login", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByEmail", mock.Anything, "fd@hotel.io").Return(active, nil)
		repo.On("UpdateLastLogin", mock.Anything, "u1", time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)).Return(nil)

		u, err := newTestService(repo).Login(context.Background(), "FD@hotel.io", "correct-horse")
		require.NoError(t, err)
		require.NotNil(t, u.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("last login failure is not fatal", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByEmail", mock.Anything, "fd@hotel.io").Return(&User{ID: "u1", PasswordHash: hash, IsActive: true}, nil)
		repo.On("UpdateLastLogin", mock.Anything, "u1", mock.Anything).Return(errors.New("db down"))

		_, err := newTestService(repo).Login(context.Background(), "fd@hotel.io", "correct-horse")
		assert.NoError(t, err)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByEmail", mock.Anything, "fd@hotel.io").Return(active, nil)

		_, err := newTestService(repo).Login(context.Background(), "fd@hotel.io", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByEmail", mock.Anything, "who@hotel.io").Return(nil, ErrNotFound)

		_, err := newTestService(repo).Login(context.Background(), "who@hotel.io", "x")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive", func(t *testing.T) {
		repo := new(mockRepo)
		repo.On("GetByEmail", mock.Anything, "old@hotel.io").Return(inactive, nil)

		_, err := newTestService(repo).Login(context.Background(), "old@hotel.io", "correct-horse")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestList_ValidatesRole(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything, Filter{Role: RoleStaff, Limit: 10}).Return([]*User{{ID: "s1"}}, 1, nil)
	svc := newTestService(repo)

	users, total, err := svc.List(context.Background(), Filter{Role: RoleStaff, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, total)

	_, _, err = svc.List(context.Background(), Filter{Role: "boss"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}
