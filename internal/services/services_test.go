package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/warbler-api/internal/database"
	"github.com/yukikurage/warbler-api/internal/models"
	"github.com/yukikurage/warbler-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// newUnitOfWork returns a unit of work that is rolled back when the test
// ends. Tests must not query db directly while it holds a transaction.
func newUnitOfWork(t *testing.T, db *gorm.DB) *repository.UnitOfWork {
	t.Helper()

	uow := repository.NewUnitOfWork(context.Background(), db)
	t.Cleanup(func() {
		_ = uow.Rollback()
	})
	return uow
}

func newAuthService() *AuthService {
	return NewAuthService(NewCredentials(bcrypt.MinCost))
}

func signupTestUser(t *testing.T, db *gorm.DB, auth *AuthService, username string) *models.User {
	t.Helper()

	uow := newUnitOfWork(t, db)
	user, err := auth.Register(uow, SignupInput{
		Username: username,
		Email:    username + "@test.com",
		Password: "password",
	})
	require.NoError(t, err)
	require.NoError(t, uow.Commit())
	return user
}

func TestCredentials(t *testing.T) {
	creds := NewCredentials(bcrypt.MinCost)

	hash, err := creds.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.True(t, creds.Verify(hash, "password"))
	assert.False(t, creds.Verify(hash, "badpassword"))

	other, err := creds.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")

	_, err = creds.Hash("")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	assert.Equal(t, bcrypt.DefaultCost, NewCredentials(0).cost)
}

func TestAuthService_LongPassword(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()
	long := strings.Repeat("p", 73)

	user, err := auth.Signup(SignupInput{Username: "a", Email: "a@a.com", Password: long})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$"))

	uow := newUnitOfWork(t, db)
	uow.Add(user)
	require.NoError(t, uow.Commit())

	_, ok, err := auth.Authenticate(uow, "a", long)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = auth.Authenticate(uow, "a", strings.Repeat("p", 72)+"q")
	require.NoError(t, err)
	assert.False(t, ok, "bytes past 72 still count")
}

func TestAuthService_Signup(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()

	user := signupTestUser(t, db, auth, "testtest")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "testtest@test.com", user.Email)
	assert.NotEqual(t, "password", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2a$"))
	require.NotNil(t, user.ImageURL)
	assert.NotEmpty(t, *user.ImageURL)

	_, err := auth.Signup(SignupInput{Username: "nopass", Email: "nopass@test.com"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestAuthService_SignupDuplicateFailsAtCommit(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()
	signupTestUser(t, db, auth, "testuser")

	uow := newUnitOfWork(t, db)
	_, err := auth.Register(uow, SignupInput{Username: "testuser", Email: "fresh@test.com", Password: "password"})
	require.NoError(t, err, "uniqueness is not checked before commit")

	err = uow.Commit()
	assert.ErrorIs(t, err, repository.ErrIntegrity)
	require.NoError(t, uow.Rollback())

	_, err = auth.Register(uow, SignupInput{Username: "fresh", Email: "testuser@test.com", Password: "password"})
	require.NoError(t, err)
	assert.ErrorIs(t, uow.Commit(), repository.ErrIntegrity)
}

func TestAuthService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()
	u := signupTestUser(t, db, auth, "testuser")

	uow := newUnitOfWork(t, db)

	user, ok, err := auth.Authenticate(uow, "testuser", "password")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, u.ID, user.ID)

	user, ok, err = auth.Authenticate(uow, "badusername", "password")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)

	user, ok, err = auth.Authenticate(uow, "testuser", "badpassword")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, user)

	_, err = auth.Login(uow, LoginInput{Username: "testuser", Password: "badpassword"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, uow.Err(), "failed logins leave the unit of work usable")
}

func TestAuthService_UpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()
	u := signupTestUser(t, db, auth, "testuser")
	signupTestUser(t, db, auth, "taken")

	uow := newUnitOfWork(t, db)
	bio := "hello"
	_, err := auth.UpdateProfile(uow, u.ID, "badpassword", ProfileInput{Bio: &bio})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	empty := ""
	updated, err := auth.UpdateProfile(uow, u.ID, "password", ProfileInput{Bio: &bio, ImageURL: &empty})
	require.NoError(t, err)
	assert.Equal(t, "hello", updated.Bio)
	require.NotNil(t, updated.ImageURL)
	assert.NotEmpty(t, *updated.ImageURL)
	require.NoError(t, uow.Commit())

	taken := "taken"
	_, err = auth.UpdateProfile(uow, u.ID, "password", ProfileInput{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameOrEmailTaken)
}

func TestAuthService_DeleteAccountCascades(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()
	social := NewSocialService()
	messages := NewMessageService()
	u1 := signupTestUser(t, db, auth, "testuser")
	u2 := signupTestUser(t, db, auth, "testuser2")

	uow := newUnitOfWork(t, db)
	msg, err := messages.Create(uow, u1.ID, "warble")
	require.NoError(t, err)
	require.NoError(t, social.Follow(uow, u1.ID, u2.ID))
	require.NoError(t, social.Follow(uow, u2.ID, u1.ID))
	require.NoError(t, social.Like(uow, u2.ID, msg.ID))
	require.NoError(t, uow.Commit())

	require.NoError(t, auth.DeleteAccount(uow, u1.ID))
	require.NoError(t, uow.Commit())

	var messageCount, followCount, likeCount int64
	require.NoError(t, db.Model(&models.Message{}).Count(&messageCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	assert.Zero(t, messageCount)
	assert.Zero(t, followCount)
	assert.Zero(t, likeCount)

	assert.ErrorIs(t, auth.DeleteAccount(uow, u1.ID), ErrUserNotFound)
}
