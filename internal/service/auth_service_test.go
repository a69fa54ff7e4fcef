package service

import (
	"context"
	"testing"
	"time"

	"github.com/paprooms/server/internal/auth"
	"github.com/paprooms/server/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	users map[string]*models.User // keyed by email
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*models.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	user.ID = uint(len(m.users) + 1)
	m.users[user.Email] = user
	return nil
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) Save(ctx context.Context, tx *gorm.DB, user *models.User) error {
	m.users[user.Email] = user
	return nil
}

func newAuthService(repo *mockUserRepo) AuthService {
	return NewAuthService(repo, auth.NewTokenManager("test-secret", time.Hour))
}

// --- Tests ---

func TestSignup_NormalizesEmailAndRole(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	user, token, err := svc.Signup(context.Background(), SignupInput{
		Name:     "  Asha  ",
		Email:    " Asha@Example.COM ",
		Password: "super-secret-1",
		Role:     models.RoleAdmin, // must not be honored
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, models.RoleGuest, user.Role, "admin signup must be coerced to guest")
	assert.Equal(t, models.ProviderLocal, user.Provider)
	assert.NotEqual(t, "super-secret-1", user.PasswordHash)
}

func TestSignup_OwnerRoleKept(t *testing.T) {
	svc := newAuthService(newMockUserRepo())

	user, _, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Host",
		Email:    "host@example.com",
		Password: "super-secret-1",
		Role:     models.RoleOwner,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleOwner, user.Role)
}

func TestSignup_EmailTaken(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Name: "First", Email: "dup@example.com", Password: "super-secret-1",
	})
	assert.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), SignupInput{
		Name: "Second", Email: "DUP@example.com", Password: "other-secret-2",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newMockUserRepo()
	svc := newAuthService(repo)

	_, _, err := svc.Signup(context.Background(), SignupInput{
		Name: "Asha", Email: "asha@example.com", Password: "super-secret-1",
	})
	assert.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "asha@example.com", "super-secret-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "asha@example.com", user.Email)

	_, _, err = svc.Login(context.Background(), "asha@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "super-secret-1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_FederatedAccountHasNoPassword(t *testing.T) {
	repo := newMockUserRepo()
	repo.users["fed@example.com"] = &models.User{
		ID:       1,
		Email:    "fed@example.com",
		Provider: models.ProviderFederated,
	}
	svc := newAuthService(repo)

	_, _, err := svc.Login(context.Background(), "fed@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
