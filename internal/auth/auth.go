// Package auth signs operators in and out and manages their account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"brotech_admin/internal/model"
	"brotech_admin/internal/session"
	"brotech_admin/pkg/utils/jwt"
	"brotech_admin/pkg/utils/validation"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

// CredentialsGuidance tells the operator how to get a working account.
const CredentialsGuidance = "This error means the email or password is incorrect. To sign in you need an operator " +
	"account: set ADMIN_EMAIL and ADMIN_PASSWORD in the server environment and restart it to create the first " +
	"one, then use those credentials here."

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionRevoked     = errors.New("session has been signed out")
	ErrUserNotFound       = errors.New("user not found")
)

type EventKind string

const (
	SignedIn  EventKind = "signed-in"
	SignedOut EventKind = "signed-out"
)

// Event describes a session change.
type Event struct {
	Kind EventKind
	User session.Identity
}

type Listener func(Event)

type Service struct {
	db  *gorm.DB
	now func() time.Time

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now, listeners: make(map[int]Listener)}
}

// Models lists the tables auth needs.
func Models() []interface{} {
	return []interface{}{&model.User{}, &model.LoginHistory{}, &model.RevokedToken{}}
}

// Subscribe registers fn for session changes and returns a func that removes it.
func (s *Service) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(ev Event) {
	s.mu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      *model.User
}

// SignIn checks credentials, issues a token and records the login.
func (s *Service) SignIn(ctx context.Context, email, password, device, ip string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Each(
		validation.Email("email", email),
		validation.Required("password", password),
	); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var user model.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	// Giriş geçmişi kaydı başarısız olursa oturum yine açılır
	history := model.LoginHistory{UserID: user.ID, Device: device, IP: ip}
	if err := db.Create(&history).Error; err != nil {
		zap.L().Warn("could not record login history", zap.String("user_id", user.ID), zap.Error(err))
	}

	s.notify(Event{Kind: SignedIn, User: identity(&user, claims.ID)})
	zap.L().Info("operator signed in", zap.String("user_id", user.ID), zap.String("ip", ip))

	return &SignInResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: &user}, nil
}

// SignOut revokes the token of the current session.
func (s *Service) SignOut(ctx context.Context, claims *jwt.Claims) error {
	revoked := model.RevokedToken{TokenID: claims.ID, UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		revoked.ExpiresAt = claims.ExpiresAt.Time
	}
	if err := s.db.WithContext(ctx).Save(&revoked).Error; err != nil {
		return fmt.Errorf("could not revoke token: %w", err)
	}

	s.notify(Event{Kind: SignedOut, User: session.Identity{UserID: claims.UserID, Email: claims.Email, TokenID: claims.ID}})
	return nil
}

// Authenticate validates a bearer token and resolves the operator behind it.
func (s *Service) Authenticate(ctx context.Context, token string) (*session.Identity, *jwt.Claims, error) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return nil, nil, err
	}

	db := s.db.WithContext(ctx)

	var n int64
	if err := db.Model(&model.RevokedToken{}).Where("token_id = ?", claims.ID).Count(&n).Error; err != nil {
		return nil, nil, fmt.Errorf("could not check token: %w", err)
	}
	if n > 0 {
		return nil, nil, ErrSessionRevoked
	}

	user, err := s.User(ctx, claims.UserID)
	if err != nil {
		return nil, nil, err
	}
	id := identity(user, claims.ID)
	return &id, claims, nil
}

func (s *Service) User(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not load user: %w", err)
	}
	return &user, nil
}

// Operators returns every operator account.
func (s *Service) Operators(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("could not list operators: %w", err)
	}
	return users, nil
}

// ChangePassword checks the new password locally before touching the store.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next, confirm string) error {
	if next != confirm {
		return validation.New("confirmPassword", "The new passwords do not match.")
	}
	if len(next) < MinPasswordLength {
		return validation.New("newPassword", "The new password must be at least 6 characters long.")
	}

	user, err := s.User(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return validation.New("currentPassword", "The current password you entered is incorrect.")
	}

	hashed, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password", hashed).Error; err != nil {
		return fmt.Errorf("could not update password: %w", err)
	}
	zap.L().Info("operator password changed", zap.String("user_id", userID))
	return nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID, displayName string) (*model.User, error) {
	displayName = strings.TrimSpace(displayName)
	if err := validation.Required("displayName", displayName); err != nil {
		return nil, err
	}

	user, err := s.User(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Update("display_name", displayName).Error; err != nil {
		return nil, fmt.Errorf("could not update profile: %w", err)
	}
	user.DisplayName = displayName
	return user, nil
}

// LoginHistory returns the most recent logins of a user, newest first.
func (s *Service) LoginHistory(ctx context.Context, userID string, limit int) ([]model.LoginHistory, error) {
	var rows []model.LoginHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// PurgeRevoked deletes revocation rows whose tokens have expired anyway.
func (s *Service) PurgeRevoked(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at < ?", s.now().UTC()).Delete(&model.RevokedToken{})
	return res.RowsAffected, res.Error
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

func identity(u *model.User, tokenID string) session.Identity {
	return session.Identity{UserID: u.ID, Email: u.Email, DisplayName: u.DisplayName, TokenID: tokenID}
}
