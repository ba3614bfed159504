package auth

import (
	"context"
	"errors"
	"strings"

	"wedding-backend/internal/domain"
	"wedding-backend/internal/pkg/constants"
	"wedding-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput creates a back-office account. WeddingID is only meaningful for wedding admins.
type RegisterInput struct {
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Fullname  string     `json:"fullname"`
	Role      string     `json:"role"`
	WeddingID *uuid.UUID `json:"wedding_id"`
}

// SessionUserShape is what /me returns and what the session holds.
type SessionUserShape struct {
	UserID    string  `json:"user_id"`
	Fullname  string  `json:"fullname"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	WeddingID *string `json:"wedding_id"`
}

// UserFinder abstracts user lookup by email+password (gorm in production, fakes in handler tests).
type UserFinder interface {
	FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.User, error)
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) FindByEmailAndPassword(ctx context.Context, email, password string) (*domain.User, error) {
	return s.LoginUser(ctx, LoginInput{Email: email, Password: password})
}

// LoginUser finds the user by email and checks the bcrypt hash.
func (s *Service) LoginUser(ctx context.Context, input LoginInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidEmail
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}
	return &u, nil
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	if !validation.IsValidFullname(in.Fullname) {
		return nil, ErrInvalidFullname
	}
	if !constants.IsValidRole(in.Role) {
		return nil, ErrInvalidRole
	}

	var n int64
	if err := s.DB.WithContext(ctx).Model(&domain.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Fullname:     strings.TrimSpace(in.Fullname),
		Role:         in.Role,
		WeddingID:    in.WeddingID,
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// VerifyUser validates the session user and returns the /me shape.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID := str(m["user_id"])
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	out := &SessionUserShape{
		UserID:   userID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}
	switch w := m["wedding_id"].(type) {
	case string:
		if w != "" {
			out.WeddingID = &w
		}
	case *string:
		if w != nil && *w != "" {
			out.WeddingID = w
		}
	}
	return out, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
