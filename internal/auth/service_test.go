package auth

import (
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/models"
)

func init() {
	logger.InitializeForTests()
}

var testSecret = []byte("test-secret-do-not-use")

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return NewService(db, testSecret)
}

func register(t *testing.T, svc *Service, email, username string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(RegisterRequest{
		Email:    email,
		Username: username,
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc := newTestService(t)

	resp := register(t, svc, "alice@example.com", "alice")
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.True(t, resp.User.IsActive)
	assert.NotEqual(t, "hunter2hunter2", resp.User.PasswordHash, "password stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice@example.com", "alice")

	_, err := svc.Register(RegisterRequest{
		Email:    "ALICE@example.com",
		Username: "alice2",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice@example.com", "alice")

	_, err := svc.Register(RegisterRequest{
		Email:    "bob@example.com",
		Username: "Alice",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice@example.com", "alice")

	resp, err := svc.Login(LoginRequest{Email: "Alice@Example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotNil(t, resp.User.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice@example.com", "alice")

	_, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(LoginRequest{Email: "nobody@example.com", Password: "whatever12"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc := newTestService(t)
	resp := register(t, svc, "alice@example.com", "alice")

	require.NoError(t, svc.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err := svc.Login(LoginRequest{Email: "alice@example.com", Password: "hunter2hunter2"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestValidateToken(t *testing.T) {
	svc := newTestService(t)
	resp := register(t, svc, "alice@example.com", "alice")

	user, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService(t)
	register(t, svc, "alice@example.com", "alice")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "x"})
	signed, err := token.SignedString([]byte("a-different-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenUserDeleted(t *testing.T) {
	svc := newTestService(t)
	resp := register(t, svc, "alice@example.com", "alice")

	require.NoError(t, svc.db.Unscoped().Delete(&models.User{}, "id = ?", resp.User.ID).Error)

	_, err := svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateTokenDeactivatedUser(t *testing.T) {
	svc := newTestService(t)
	resp := register(t, svc, "alice@example.com", "alice")

	require.NoError(t, svc.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err := svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}
