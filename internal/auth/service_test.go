package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/timesheet-tracker/internal"
	coreUser "github.com/frahmantamala/timesheet-tracker/internal/core/user"
	"github.com/frahmantamala/timesheet-tracker/internal/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

const testSecret = "test-secret-test-secret-test-secret"

// Mock UserRepository for testing
type mockUserRepository struct {
	users         map[string]*user.User // username -> user
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*user.User{}}
}

func (m *mockUserRepository) Create(_ context.Context, u *user.User) error {
	if m.returnError {
		return m.errorToReturn
	}
	m.users[u.Username] = u
	return nil
}

func (m *mockUserRepository) GetByID(_ context.Context, id string) (*user.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, internal.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByEmailOrUsername(_ context.Context, email, username string) (bool, error) {
	if m.returnError {
		return false, m.errorToReturn
	}
	for _, u := range m.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		ctx      context.Context
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	register := func(username string, role string) *user.User {
		u, err := service.Register(ctx, RegisterDTO{
			Email:    username + "@example.com",
			Username: username,
			FullName: strings.ToUpper(username),
			Password: "correct_password",
			Role:     role,
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return u
	}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(testSecret, 30*time.Minute)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("should default the role to employee and hash the password", func() {
			u := register("ada", "")

			gomega.Expect(u.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(u.Role).To(gomega.Equal(coreUser.RoleEmployee))
			gomega.Expect(u.IsActive).To(gomega.BeTrue())
			gomega.Expect(u.PasswordHash).ToNot(gomega.Equal("correct_password"))
			gomega.Expect(service.VerifyPassword(u.PasswordHash, "correct_password")).To(gomega.BeTrue())
		})

		ginkgo.It("should honour an explicit role", func() {
			u := register("boss", "manager")
			gomega.Expect(u.Role).To(gomega.Equal(coreUser.RoleManager))
		})

		ginkgo.It("should reject a taken username or email with conflict", func() {
			register("ada", "")

			_, err := service.Register(ctx, RegisterDTO{Email: "other@example.com", Username: "ada", FullName: "A", Password: "x"})
			gomega.Expect(errors.Is(err, internal.ErrUserExists)).To(gomega.BeTrue())
			gomega.Expect(internal.KindOf(err)).To(gomega.Equal(internal.ErrorTypeConflict))

			_, err = service.Register(ctx, RegisterDTO{Email: "ada@example.com", Username: "ada2", FullName: "A", Password: "x"})
			gomega.Expect(errors.Is(err, internal.ErrUserExists)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an unknown role", func() {
			_, err := service.Register(ctx, RegisterDTO{Email: "x@example.com", Username: "x", FullName: "X", Password: "x", Role: "root"})
			gomega.Expect(internal.KindOf(err)).To(gomega.Equal(internal.ErrorTypeInvalidRequest))
		})

		ginkgo.It("should reject a password bcrypt cannot hash", func() {
			_, err := service.Register(ctx, RegisterDTO{
				Email:    "long@example.com",
				Username: "long",
				FullName: "Long",
				Password: strings.Repeat("a", 73),
			})
			gomega.Expect(internal.KindOf(err)).To(gomega.Equal(internal.ErrorTypeInvalidRequest))
			gomega.Expect(mockRepo.users).To(gomega.BeEmpty())

			u, err := service.Register(ctx, RegisterDTO{
				Email:    "edge@example.com",
				Username: "edge",
				FullName: "Edge",
				Password: strings.Repeat("a", 72),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(service.VerifyPassword(u.PasswordHash, strings.Repeat("a", 72))).To(gomega.BeTrue())
		})

		ginkgo.It("should reject missing fields", func() {
			_, err := service.Register(ctx, RegisterDTO{})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			details := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors).To(gomega.HaveLen(4))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.BeforeEach(func() {
			register("ada", "")
		})

		ginkgo.It("should return a bearer token and the user", func() {
			resp, err := service.Login(ctx, LoginDTO{Username: "ada", Password: "correct_password"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.TokenType).To(gomega.Equal("bearer"))
			gomega.Expect(resp.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(resp.User.Username).To(gomega.Equal("ada"))
		})

		ginkgo.It("should not distinguish unknown users from wrong passwords", func() {
			_, err1 := service.Login(ctx, LoginDTO{Username: "ada", Password: "wrong"})
			_, err2 := service.Login(ctx, LoginDTO{Username: "nobody", Password: "correct_password"})

			gomega.Expect(err1).To(gomega.Equal(internal.ErrInvalidCredentials))
			gomega.Expect(err2).To(gomega.Equal(internal.ErrInvalidCredentials))
		})

		ginkgo.It("should reject inactive users", func() {
			mockRepo.users["ada"].IsActive = false
			_, err := service.Login(ctx, LoginDTO{Username: "ada", Password: "correct_password"})
			gomega.Expect(errors.Is(err, internal.ErrUserInactive)).To(gomega.BeTrue())
		})

		ginkgo.It("should surface storage failures", func() {
			mockRepo.setError(internal.NewUnavailableError("down", errors.New("boom")))
			_, err := service.Login(ctx, LoginDTO{Username: "ada", Password: "correct_password"})
			gomega.Expect(internal.KindOf(err)).To(gomega.Equal(internal.ErrorTypeUnavailable))
		})
	})

	ginkgo.Describe("ResolveActor", func() {
		ginkgo.It("should resolve the token subject to an actor", func() {
			u := register("boss", "manager")
			resp, err := service.Login(ctx, LoginDTO{Username: "boss", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			actor, err := service.ResolveActor(ctx, resp.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(actor.ID).To(gomega.Equal(u.ID))
			gomega.Expect(actor.Role).To(gomega.Equal(coreUser.RoleManager))
		})

		ginkgo.It("should reject tokens for users that no longer exist", func() {
			token, err := tokenGen.GenerateAccessToken("gone-id", "gone")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.ResolveActor(ctx, token)
			gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject deactivated users", func() {
			register("ada", "")
			resp, _ := service.Login(ctx, LoginDTO{Username: "ada", Password: "correct_password"})
			mockRepo.users["ada"].IsActive = false

			_, err := service.ResolveActor(ctx, resp.AccessToken)
			gomega.Expect(errors.Is(err, internal.ErrUserInactive)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Me", func() {
		ginkgo.It("should return the stored profile", func() {
			u := register("ada", "")
			me, err := service.Me(ctx, u.Actor())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(me.Email).To(gomega.Equal("ada@example.com"))
		})
	})
})

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var tokenGen *JWTTokenGenerator

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator(testSecret, 30*time.Minute)
	})

	ginkgo.It("should round-trip the subject and user id", func() {
		token, err := tokenGen.GenerateAccessToken("u-1", "ada")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		claims, err := tokenGen.ValidateToken(token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(claims.Subject).To(gomega.Equal("ada"))
		gomega.Expect(claims.UserID).To(gomega.Equal("u-1"))
		gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally("~", time.Now().Add(30*time.Minute), 5*time.Second))
	})

	ginkgo.It("should report expired tokens as expired", func() {
		expired := NewJWTTokenGenerator(testSecret, -time.Minute)
		token, err := expired.GenerateAccessToken("u-1", "ada")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokenGen.ValidateToken(token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrTokenExpired))
		gomega.Expect(internal.KindOf(err)).To(gomega.Equal(internal.ErrorTypeUnauthenticated))
	})

	ginkgo.It("should reject tokens signed with another secret", func() {
		other := NewJWTTokenGenerator("another-secret-another-secret-xx", time.Minute)
		token, _ := other.GenerateAccessToken("u-1", "ada")

		_, err := tokenGen.ValidateToken(token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
	})

	ginkgo.It("should reject malformed tokens", func() {
		_, err := tokenGen.ValidateToken("not-a-jwt")
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
	})

	ginkgo.It("should reject non-HMAC algorithms", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "ada",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokenGen.ValidateToken(signed)
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
	})

	ginkgo.It("should require an expiry", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "ada"},
		})
		signed, err := token.SignedString([]byte(testSecret))
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = tokenGen.ValidateToken(signed)
		gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
	})
})
