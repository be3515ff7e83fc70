package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	TokenSvc service.TokenService
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		tokenSvc: params.TokenSvc,
		logger:   params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

const minPasswordLength = 8

// Register creates a new account and returns a signed bearer token for it.
// Email uniqueness is enforced by the repository's unique constraint rather
// than a prior existence check, so two concurrent registrations for the same
// email cannot both succeed.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing name")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid email address")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("password must be at least 8 characters")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}

		return nil, domainerrors.ErrUserCreationFailed.WrapMessage("failed to persist user")
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", user.ID))

	return srv.issueToken(user)
}

// Login verifies the credentials and returns a signed bearer token.
// An unknown email and a wrong password produce the same error so the
// response never reveals which accounts exist.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("missing email or password")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to look up user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return srv.issueToken(user)
}

func (srv *userService) issueToken(user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokenSvc.GenerateToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &usecase.AuthOutput{
		Token: token,
		User:  usecase.NewUserView(user),
	}, nil
}
