package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"wayfarer/internal/auth"
	apperrors "wayfarer/internal/errors"
	"wayfarer/internal/mail"
	"wayfarer/internal/model"
	"wayfarer/internal/repository"
)

const (
	resetEmailSubject = "Your password reset token (valid for 15 min)"
	resetEmailBody    = `<p>Forgot your password? Follow the link below to set a new one:</p>
<p><a href="%[1]v">%[1]v</a></p>
<p>If you didn't request a password reset, please ignore this email.</p>`
)

// AuthService composes the credential subsystem into the register, login,
// forgot and reset flows.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	// ForgotPassword never reports to the caller whether the account
	// exists; the returned reset link is non-empty only when a token was
	// issued and dispatched, and is intended for non-production
	// diagnostics only.
	ForgotPassword(ctx context.Context, email string) (resetLink string, err error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	mailer     mail.Mailer
	appURL     string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	mailer mail.Mailer,
	appURL string,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		mailer:     mailer,
		appURL:     appURL,
	}
}

// normalizeEmail trims whitespace and lowercases an email so lookups and
// the unique index operate on one canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with hashed password and issues a session token.
func (s *authService) Register(ctx context.Context, name, email, password string) (string, *model.User, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", nil, apperrors.ErrMissingFields
	}

	key, salt, err := s.hasher.Set(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		Role:         model.RoleUser,
		PasswordKey:  key,
		PasswordSalt: salt,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", nil, apperrors.ErrDuplicateIdentity
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	return token, user, nil
}

// Login verifies credentials and issues a session token. The failure is
// identical whether the account is absent or the password is wrong.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apperrors.ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordKey, user.PasswordSalt) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	return token, user, nil
}

// ForgotPassword issues a one-time reset token and mails the reset link.
// Every outcome other than missing input degrades to the same generic
// acknowledgment; internal failures are logged for operators only.
func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", apperrors.ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("forgot password: lookup failed: %v", err)
		}
		return "", nil
	}

	token, digest, err := auth.GenerateResetToken()
	if err != nil {
		log.Printf("forgot password: %v", err)
		return "", nil
	}

	user.SetResetToken(digest, time.Now().Add(auth.ResetTokenExpiry))
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("forgot password: store token: %v", err)
		return "", nil
	}

	resetLink := s.appURL + "/reset-password/" + token
	body := fmt.Sprintf(resetEmailBody, resetLink)
	if err := s.mailer.Send(user.Email, resetEmailSubject, body); err != nil {
		// A token the user never received must not stay redeemable.
		// Best effort: if the rollback fails too, the token dies by
		// its own expiry.
		log.Printf("forgot password: send mail: %v", err)
		if err := s.userRepo.ClearResetToken(ctx, user); err != nil {
			log.Printf("forgot password: rollback token: %v", err)
		}
		return "", nil
	}

	return resetLink, nil
}

// ResetPassword redeems a one-time reset token and sets the new password.
// The new hash material and the cleared token fields are persisted in a
// single write.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return apperrors.ErrMissingFields
	}
	// Reject malformed tokens before touching the store.
	if len(token) != auth.ResetTokenLen {
		return apperrors.ErrInvalidOrExpiredToken
	}

	digest := auth.HashResetToken(token)
	user, err := s.userRepo.FindByResetTokenHash(ctx, digest, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	if user.ResetTokenHash == nil || !auth.VerifyResetToken(token, *user.ResetTokenHash) {
		return apperrors.ErrInvalidOrExpiredToken
	}

	key, salt, err := s.hasher.Set(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordKey = key
	user.PasswordSalt = salt
	user.ClearResetToken()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("save password: %w", err)
	}

	return nil
}
