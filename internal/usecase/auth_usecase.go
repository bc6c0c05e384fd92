package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// ハッシュと平文の照合
type PasswordVerifier interface {
	Verify(hash string, plain string) error
}

// アクセストークンの発行
type TokenIssuer interface {
	Issue(user model.User, now time.Time) (string, time.Time, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(hash string, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

type AuthUsecase struct {
	users    repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

// DI
func NewAuthUsecase(
	users repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Registerは会員登録。roleは常にcustomerで作る
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.User{}, NewError(KindValidation, "name required")
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, NewError(KindValidation, "invalid email format")
	}
	if len(in.Password) < 6 {
		return model.User{}, NewError(KindValidation, "password must be 6 characters or more")
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewError(KindInternal, "hash error")
	}

	now := u.clock.Now()
	user := model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrConflict) {
			return model.User{}, NewError(KindValidation, "email already in use")
		}
		return model.User{}, NewError(KindInternal, "db error")
	}

	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      model.User `json:"user"`
}

// Loginは照合に成功したらアクセストークンを返す。
// 存在しないメールと誤ったパスワードは同じエラーにする
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return LoginOutput{}, NewError(KindValidation, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewError(KindInternal, "db error")
	}

	if err := u.verifier.Verify(user.PasswordHash, in.Password); err != nil {
		return LoginOutput{}, NewError(KindValidation, "invalid credentials")
	}

	token, expiresAt, err := u.issuer.Issue(user, u.clock.Now())
	if err != nil {
		return LoginOutput{}, NewError(KindInternal, "token error")
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
