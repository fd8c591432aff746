package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/homestay/rental-service/internal/auth"
	"github.com/homestay/rental-service/internal/domain"
	"github.com/homestay/rental-service/internal/events"
	"github.com/homestay/rental-service/internal/repository"
	apperrors "github.com/homestay/rental-service/pkg/util"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required"`
	Phone    *string `json:"phone"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult is a user paired with the token the caller should hold.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	users    *repository.UserRepository
	tokens   *auth.TokenIssuer
	events   events.Dispatcher
	logger   *zap.Logger
	validate *validator.Validate
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Users      *repository.UserRepository
	Tokens     *auth.TokenIssuer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &AuthService{
		users:    deps.Users,
		tokens:   deps.Tokens,
		events:   dispatcher,
		logger:   logger,
		validate: v,
	}
}

// Register creates a new account and issues its first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, in.Name, in.Email, in.Password, in.Phone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			return nil, apperrors.NewDuplicateEmail()
		case errors.Is(err, bcrypt.ErrPasswordTooLong):
			return nil, apperrors.NewValidationError("password too long", map[string]any{"password": "must be at most 72 bytes"})
		default:
			return nil, apperrors.NewStoreFailure(err)
		}
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Name:  user.Name,
		Email: user.Email,
	}))
	return result, nil
}

// Login checks credentials, refreshes the account's UpdatedAt by re-applying
// its current profile, and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := s.validateInput(in); err != nil {
		return nil, err
	}

	user, ok, err := s.users.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, apperrors.NewStoreFailure(err)
	}
	if !ok {
		return nil, apperrors.NewInvalidCredentials()
	}

	touched, err := s.users.UpdateProfile(ctx, user.ID, user.ProfileFields())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, apperrors.NewStoreFailure(err)
	}

	result, err := s.issue(touched)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.New(events.EventUserLoggedIn, touched.ID, nil))
	return result, nil
}

// UpdateProfile applies allow-listed fields for the token's user. The token
// is echoed back unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, token string, fields map[string]any) (*AuthResult, error) {
	claims, err := s.Authorize(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, claims.UserID, fields)
	if err != nil {
		return nil, s.mapLookupError(err)
	}

	changes := domain.FilterProfileFields(fields)
	if len(changes) > 0 {
		names := make([]string, 0, len(changes))
		for _, field := range domain.ProfileAllowList {
			if _, ok := changes[field]; ok {
				names = append(names, string(field))
			}
		}
		s.publish(ctx, events.New(events.EventUserProfileUpdated, user.ID, events.UserProfileUpdatedPayload{Fields: names}))
	}

	return &AuthResult{User: user, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Profile returns the current profile for the token's user.
func (s *AuthService) Profile(ctx context.Context, token string) (*AuthResult, error) {
	claims, err := s.Authorize(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, s.mapLookupError(err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Authorize verifies a bearer token without touching the store.
func (s *AuthService) Authorize(token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorized("missing token")
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return claims, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *AuthService) mapLookupError(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return apperrors.NewNotFound("user", nil)
	}
	return apperrors.NewStoreFailure(err)
}

func (s *AuthService) validateInput(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			details[fe.Field()] = "is required"
			continue
		}
		details[fe.Field()] = "is invalid"
	}
	return apperrors.NewValidationError("missing required fields", details)
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("user_id", event.UserID),
			zap.Error(err))
	}
}
