package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/warbler-api/internal/constants"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrUsernameOrEmailTaken = errors.New("username or email already taken")
)

// AuthService handles signup, authentication and account management.
type AuthService struct {
	credentials *Credentials
}

// NewAuthService creates a new AuthService.
func NewAuthService(credentials *Credentials) *AuthService {
	return &AuthService{
		credentials: credentials,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL *string
}

// Signup builds a new user with a hashed password. The user is not
// persisted; uniqueness of username and email is enforced when the caller
// commits it.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	hash, err := s.credentials.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	imageURL := constants.DefaultImageURL
	if input.ImageURL != nil && strings.TrimSpace(*input.ImageURL) != "" {
		imageURL = *input.ImageURL
	}
	headerImageURL := constants.DefaultHeaderImageURL

	return &models.User{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hash,
		ImageURL:       &imageURL,
		HeaderImageURL: &headerImageURL,
	}, nil
}

// Register signs a user up and stages them in uow.
func (s *AuthService) Register(uow *repository.UnitOfWork, input SignupInput) (*models.User, error) {
	user, err := s.Signup(input)
	if err != nil {
		return nil, err
	}

	uow.Add(user)
	return user, nil
}

// Authenticate returns the user when username exists and password matches
// the stored hash. Unknown usernames and wrong passwords both yield
// (nil, false, nil); only storage failures produce an error.
func (s *AuthService) Authenticate(uow *repository.UnitOfWork, username, password string) (*models.User, bool, error) {
	user, err := uow.Users().FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.credentials.Burn(password)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.credentials.Verify(user.PasswordHash, password) {
		return nil, false, nil
	}

	return user, true, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(uow *repository.UnitOfWork, input LoginInput) (*models.User, error) {
	user, ok, err := s.Authenticate(uow, input.Username, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(uow *repository.UnitOfWork, id uint64) (*models.User, error) {
	user, err := uow.Users().FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ProfileInput holds the editable profile fields. Nil fields are left as
// they are.
type ProfileInput struct {
	Username       *string
	Email          *string
	ImageURL       *string
	HeaderImageURL *string
	Bio            *string
	Location       *string
}

// UpdateProfile edits the user's profile after re-checking their password.
func (s *AuthService) UpdateProfile(uow *repository.UnitOfWork, id uint64, password string, input ProfileInput) (*models.User, error) {
	user, err := s.GetUser(uow, id)
	if err != nil {
		return nil, err
	}

	if !s.credentials.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.ImageURL != nil {
		user.ImageURL = nonEmptyOr(*input.ImageURL, constants.DefaultImageURL)
	}
	if input.HeaderImageURL != nil {
		user.HeaderImageURL = nonEmptyOr(*input.HeaderImageURL, constants.DefaultHeaderImageURL)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Location = *input.Location
	}

	if err := uow.Users().Update(user); err != nil {
		if repository.IsIntegrityViolation(err) {
			return nil, ErrUsernameOrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// DeleteAccount removes the user along with their messages, follows and
// likes.
func (s *AuthService) DeleteAccount(uow *repository.UnitOfWork, id uint64) error {
	if err := uow.Users().Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func nonEmptyOr(value, fallback string) *string {
	if strings.TrimSpace(value) == "" {
		return &fallback
	}
	return &value
}
