package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmanager/apperrors"
	"taskmanager/models"
	"taskmanager/repositories"
)

const invalidCredentialsMsg = "Invalid username or password"

// RegisterInput carries the registration form fields. Password2 is the
// confirmation the client re-types.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Password2 string
}

// UserService implements registration, authentication and password changes.
type UserService struct {
	users     *repositories.UserRepository
	blackList map[string]bool
}

func NewUserService(users *repositories.UserRepository, blackList map[string]bool) *UserService {
	return &UserService{users: users, blackList: blackList}
}

// Register validates the input, hashes the password and stores the new user.
// The plaintext password is never persisted.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, apperrors.NewValidation("username", "This field is required.")
	}
	if in.Password == "" {
		return nil, apperrors.NewValidation("password", "This field is required.")
	}
	if in.Password != in.Password2 {
		return nil, apperrors.NewValidation("password", "Passwords do not match.")
	}
	if err := s.ValidatePassword(in.Password, in.Username); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewValidation("username", "A user with that username already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Two concurrent registrations can both pass the exists check; the
		// unique index catches the loser.
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, apperrors.NewValidation("username", "A user with that username already exists.")
		}
		return nil, err
	}
	return user, nil
}

// ValidatePassword enforces the strength policy: minimum length, not purely
// numeric, not too similar to the username, not on the common-password list.
func (s *UserService) ValidatePassword(password, username string) error {
	if len(password) < 8 {
		return apperrors.NewValidation("password", "This password is too short. It must contain at least 8 characters.")
	}

	numeric := true
	for _, char := range password {
		if !unicode.IsDigit(char) {
			numeric = false
			break
		}
	}
	if numeric {
		return apperrors.NewValidation("password", "This password is entirely numeric.")
	}

	lowerPassword := strings.ToLower(password)
	lowerUsername := strings.ToLower(username)
	if len(lowerUsername) >= 3 &&
		(strings.Contains(lowerPassword, lowerUsername) || strings.Contains(lowerUsername, lowerPassword)) {
		return apperrors.NewValidation("password", "The password is too similar to the username.")
	}

	if s.blackList[lowerPassword] {
		return apperrors.NewValidation("password", "This password is too common.")
	}

	return nil
}

// Authenticate verifies credentials. The failure message is identical whether
// the username or the password was wrong, so accounts cannot be enumerated.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.NewAuth(invalidCredentialsMsg)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.NewAuth(invalidCredentialsMsg)
	}
	return user, nil
}

// GetProfile returns the user behind an authenticated identity.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAuth("Invalid or expired token")
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password and replaces the stored hash.
// Previously issued tokens stay valid until their natural expiry.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewAuth("Invalid or expired token")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperrors.NewValidation("old_password", "Wrong password.")
	}
	if err := s.ValidatePassword(newPassword, user.Username); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}
