package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"likering/internal/api/dto"
	"likering/internal/model"
	"likering/internal/repository"
	"likering/pkg/utils"
)

const (
	minUsernameLength = 3
	minPasswordLength = 4
)

// AuthService handles credentials and account settings.
type AuthService struct {
	users UserStore
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account and returns its profile with zeroed counters.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserProfile, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || strings.TrimSpace(req.ImageURL) == "" {
		return nil, invalid("Username, password and image URL are required")
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return nil, invalid("Username must be at least 3 characters long")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		ImageURL:     strings.TrimSpace(req.ImageURL),
		Plan:         "blue",
		State:        "active",
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return toUserProfile(user), nil
}

// Login checks credentials. Unknown users and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserProfile, error) {
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, invalid("Username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return toUserProfile(user), nil
}

// UpdatePassword replaces the stored hash. The new password needs at least
// four characters.
func (s *AuthService) UpdatePassword(ctx context.Context, req *dto.UpdatePasswordRequest) error {
	if strings.TrimSpace(req.Username) == "" || req.NewPassword == "" {
		return invalid("Username and new password are required")
	}
	if utf8.RuneCountInString(req.NewPassword) < minPasswordLength {
		return invalid("Password must be at least 4 characters long")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	updated, err := s.users.UpdatePassword(ctx, req.Username, hash)
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}
	return nil
}

// UpdateProfilePicture replaces the user's image URL.
func (s *AuthService) UpdateProfilePicture(ctx context.Context, req *dto.UpdateProfilePictureRequest) error {
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.ImageURL) == "" {
		return invalid("Username and image URL are required")
	}

	updated, err := s.users.UpdateImage(ctx, req.Username, strings.TrimSpace(req.ImageURL))
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}
	return nil
}

func toUserProfile(user *model.User) *dto.UserProfile {
	return &dto.UserProfile{
		Username:       user.Username,
		ImageURL:       user.ImageURL,
		Plan:           user.Plan,
		State:          user.State,
		LikesAvailable: user.LikesAvailable,
		LikesEarned:    user.LikesEarned,
		MoneyEarned:    user.MoneyEarned,
	}
}
