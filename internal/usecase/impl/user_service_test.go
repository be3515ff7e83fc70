package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(userRepo *MockUserRepository, hasher *MockPasswordHasher, tokenSvc *MockTokenService) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		UserRepo: userRepo,
		Hasher:   hasher,
		TokenSvc: tokenSvc,
		Logger:   newTestLogger(),
	})
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates account and returns token", func(t *testing.T) {
		t.Parallel()

		userRepo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)
		tokenSvc := new(MockTokenService)

		hasher.On("Hash", "hunter2hunter2").Return("$2a$10$hash", nil)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*entity.User)
				user.ID = uuid.New()
				assert.Equal(t, "$2a$10$hash", user.PasswordHash)
			}).
			Return(nil)
		tokenSvc.On("GenerateToken", mock.AnythingOfType("uuid.UUID")).Return("signed.jwt", nil)

		svc := newUserService(userRepo, hasher, tokenSvc)

		out, err := svc.Register(context.Background(), &usecase.RegisterInput{
			Name:     "Ada",
			Email:    "Ada@Example.com",
			Password: "hunter2hunter2",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", out.Token)
		assert.Equal(t, "Ada", out.User.Name)
		// Email is normalized to lower case before storage.
		assert.Equal(t, "ada@example.com", out.User.Email)
	})

	t.Run("maps duplicate email to conflict", func(t *testing.T) {
		t.Parallel()

		userRepo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)

		hasher.On("Hash", mock.Anything).Return("$2a$10$hash", nil)
		userRepo.On("Create", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicateEmail)

		svc := newUserService(userRepo, hasher, new(MockTokenService))

		_, err := svc.Register(context.Background(), &usecase.RegisterInput{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "hunter2hunter2",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	})

	t.Run("rejects weak or malformed input", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name  string
			input usecase.RegisterInput
		}{
			{"missing name", usecase.RegisterInput{Email: "a@b.co", Password: "hunter2hunter2"}},
			{"bad email", usecase.RegisterInput{Name: "Ada", Email: "not-an-email", Password: "hunter2hunter2"}},
			{"short password", usecase.RegisterInput{Name: "Ada", Email: "a@b.co", Password: "short"}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				userRepo := new(MockUserRepository)
				svc := newUserService(userRepo, new(MockPasswordHasher), new(MockTokenService))

				input := tc.input
				_, err := svc.Register(context.Background(), &input)

				require.Error(t, err)
				assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
				userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	user := &entity.User{
		ID:           uuid.New(),
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
	}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		t.Parallel()

		userRepo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)
		tokenSvc := new(MockTokenService)

		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		hasher.On("Check", "hunter2hunter2", user.PasswordHash).Return(true)
		tokenSvc.On("GenerateToken", user.ID).Return("signed.jwt", nil)

		svc := newUserService(userRepo, hasher, tokenSvc)

		out, err := svc.Login(context.Background(), &usecase.LoginInput{
			Email:    "ada@example.com",
			Password: "hunter2hunter2",
		})

		require.NoError(t, err)
		assert.Equal(t, "signed.jwt", out.Token)
		assert.Equal(t, user.ID.String(), out.User.ID)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()

		userRepo := new(MockUserRepository)
		hasher := new(MockPasswordHasher)

		userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repository.ErrUserNotFound)
		userRepo.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
		hasher.On("Check", "wrong-password", user.PasswordHash).Return(false)

		svc := newUserService(userRepo, hasher, new(MockTokenService))

		_, unknownErr := svc.Login(context.Background(), &usecase.LoginInput{
			Email:    "ghost@example.com",
			Password: "whatever-pass",
		})
		_, wrongErr := svc.Login(context.Background(), &usecase.LoginInput{
			Email:    "ada@example.com",
			Password: "wrong-password",
		})

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	})
}
