package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, now time.Time) (token string, expiresAt time.Time, err error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// ログイン成功時にセッションカートを畳み込む約束
type CartMerger interface {
	MergeOnLogin(ctx context.Context, sessionID string, userID int64) error
}

type AuthUsecase struct {
	userRepo   repo.UserRepository
	merger     CartMerger
	issuer     AccessTokenIssuer
	clock      Clock
	bcryptCost int
}

func NewAuthUsecase(
	userRepo repo.UserRepository,
	merger CartMerger,
	issuer AccessTokenIssuer,
	clock Clock,
	bcryptCost int,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		merger:     merger,
		issuer:     issuer,
		clock:      clock,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string

	//マージ対象のセッション
	SessionID string
}

type UserOutput struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginOutput struct {
	User        UserOutput `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int        `json:"expires_in"`
}

// Register は会員登録
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (UserOutput, error) {
	email := strings.TrimSpace(in.Email)

	if _, err := mail.ParseAddress(email); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	if len(in.Password) < 8 {
		return UserOutput{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	//email重複チェック
	if existing, err := u.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return UserOutput{}, NewHTTPError(http.StatusConflict, "email already exists")
	} else if err != nil && err != repo.ErrUserNotFound {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return UserOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserOutput{ID: user.ID, Email: user.Email}, nil
}

// Login は認証してアクセストークンを返す。
// 成功したらそのログインにつき1回だけカートマージを走らせる。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrUserNotFound {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !user.IsActive {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//最終ログイン時刻更新
	user.LastLoginAt = &now
	if err := u.userRepo.Update(ctx, user); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//セッションカートを永続カートへ
	if err := u.merger.MergeOnLogin(ctx, in.SessionID, user.ID); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "cart merge failed")
	}

	return LoginOutput{
		User:        UserOutput{ID: user.ID, Email: user.Email},
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}, nil
}
