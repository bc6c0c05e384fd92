package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type AuthUserRepoMock struct{ mock.Mock }

func (m *AuthUserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *AuthUserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	panic("not used in these tests")
}

func (m *AuthUserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

type HasherMock struct{ mock.Mock }

func (m *HasherMock) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

type VerifierMock struct{ mock.Mock }

func (m *VerifierMock) Verify(hash string, plain string) error {
	args := m.Called(hash, plain)
	return args.Error(0)
}

type IssuerMock struct{ mock.Mock }

func (m *IssuerMock) Issue(user model.User, now time.Time) (string, time.Time, error) {
	args := m.Called(user, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newAuthTestDeps() (*AuthUserRepoMock, *HasherMock, *VerifierMock, *IssuerMock, *fixedClock) {
	users := new(AuthUserRepoMock)
	hasher := new(HasherMock)
	verifier := new(VerifierMock)
	issuer := new(IssuerMock)
	clock := &fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return users, hasher, verifier, issuer, clock
}

// =====================
// Register tests
// =====================

func TestAuthUsecase_Register_Success(t *testing.T) {
	ctx := context.Background()
	users, hasher, verifier, issuer, clock := newAuthTestDeps()

	hasher.On("Hash", "secret1").Return("hashed", nil)
	//roleは常にcustomer。メールは小文字化される
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "Taro" &&
			u.Email == "taro@example.com" &&
			u.PasswordHash == "hashed" &&
			u.Role == model.RoleCustomer
	})).Return(nil)

	uc := usecase.NewAuthUsecase(users, hasher, verifier, issuer, clock)
	user, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     " Taro ",
		Email:    "Taro@Example.com",
		Password: "secret1",
	})

	assert.NoError(t, err)
	assert.Equal(t, "taro@example.com", user.Email)
	users.AssertExpectations(t)
}

func TestAuthUsecase_Register_InvalidEmail(t *testing.T) {
	users, hasher, verifier, issuer, clock := newAuthTestDeps()

	uc := usecase.NewAuthUsecase(users, hasher, verifier, issuer, clock)
	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Taro",
		Email:    "not-an-email",
		Password: "secret1",
	})

	assertErrKind(t, err, usecase.KindValidation)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_Register_ShortPassword(t *testing.T) {
	users, hasher, verifier, issuer, clock := newAuthTestDeps()

	uc := usecase.NewAuthUsecase(users, hasher, verifier, issuer, clock)
	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Name:     "Taro",
		Email:    "taro@example.com",
		Password: "12345",
	})

	assertErrKind(t, err, usecase.KindValidation)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users, hasher, verifier, issuer, clock := newAuthTestDeps()

	hasher.On("Hash", "secret1").Return("hashed", nil)
	users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	uc := usecase.NewAuthUsecase(users, hasher, verifier, issuer, clock)
	_, err := uc.Register(ctx, usecase.RegisterInput{
		Name:     "Taro",
		Email:    "taro@example.com",
		Password: "secret1",
	})

	assertErrKind(t, err, usecase.KindValidation)
}

// =====================
// Login tests
// =====================

func TestAuthUsecase_Login_Success(t *testing.T) {
	ctx := context.Background()
	users, hasher, verifier, issuer, clock := newAuthTestDeps()

	user := model.User{ID: 7, Name: "Taro", Email: "taro@example.com", PasswordHash: "hashed", Role: model.RoleCustomer}
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(user, nil)
	verifier.On("Verify", "hashed", "secret1").Return(nil)
	expiresAt := clock.now.Add(15 * time.Minute)
	issuer.On("Issue", user, clock.now).Return("token-abc", expiresAt, nil)

	uc := usecase.NewAuthUsecase(users, hasher, verifier, issuer, clock)
	out, err := uc.Login(ctx, usecase.LoginInput{Email: "Taro@Example.com", Password: "secret1"})

	assert.NoError(t, err)
	assert.Equal(t, "token-abc", out.Token)
	assert.Equal(t, expiresAt, out.ExpiresAt)
	assert.Equal(t, int64(7), out.User.ID)
	issuer.AssertExpectations(t)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	users, hasher, verifier, issuer, clock := newAuthTestDeps()

	users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(model.User{}, repo.ErrNotFound)

	uc := usecase.NewAuthUsecase(users, hasher, verifier, issuer, clock)
	_, err := uc.Login(ctx, usecase.LoginInput{Email: "nobody@example.com", Password: "secret1"})

	//存在有無が漏れないように誤パスワードと同じエラー
	assertErrKind(t, err, usecase.KindValidation)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	users, hasher, verifier, issuer, clock := newAuthTestDeps()

	user := model.User{ID: 7, Email: "taro@example.com", PasswordHash: "hashed"}
	users.On("FindByEmail", mock.Anything, "taro@example.com").Return(user, nil)
	verifier.On("Verify", "hashed", "wrong").Return(assert.AnError)

	uc := usecase.NewAuthUsecase(users, hasher, verifier, issuer, clock)
	_, err := uc.Login(ctx, usecase.LoginInput{Email: "taro@example.com", Password: "wrong"})

	assertErrKind(t, err, usecase.KindValidation)
	assert.Contains(t, err.Error(), "invalid credentials")
	issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
}
