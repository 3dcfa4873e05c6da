package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/warbler-api/internal/utils"
)

func TestMessageService_Create(t *testing.T) {
	db := setupTestDB(t)
	u := signupTestUser(t, db, newAuthService(), "testuser")
	messages := NewMessageService()

	uow := newUnitOfWork(t, db)
	_, err := messages.Create(uow, u.ID, "")
	assert.ErrorIs(t, err, ErrMessageTextInvalid)
	_, err = messages.Create(uow, u.ID, "   ")
	assert.ErrorIs(t, err, ErrMessageTextInvalid)
	_, err = messages.Create(uow, u.ID, strings.Repeat("a", 141))
	assert.ErrorIs(t, err, ErrMessageTextInvalid)

	msg, err := messages.Create(uow, u.ID, strings.Repeat("é", 140))
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.False(t, msg.Timestamp.IsZero())

	got, err := messages.Get(uow, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "testuser", got.User.Username)

	_, err = messages.Get(uow, 999)
	assert.ErrorIs(t, err, ErrMessageNotFound)
}

func TestMessageService_Delete(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()
	u1 := signupTestUser(t, db, auth, "testuser")
	u2 := signupTestUser(t, db, auth, "testuser2")
	messages := NewMessageService()

	uow := newUnitOfWork(t, db)
	msg, err := messages.Create(uow, u1.ID, "mine")
	require.NoError(t, err)
	require.NoError(t, NewSocialService().Like(uow, u2.ID, msg.ID))

	assert.ErrorIs(t, messages.Delete(uow, u2.ID, msg.ID), ErrNotMessageOwner)
	require.NoError(t, messages.Delete(uow, u1.ID, msg.ID))
	assert.ErrorIs(t, messages.Delete(uow, u1.ID, msg.ID), ErrMessageNotFound)

	count, err := uow.Likes().CountByUser(u2.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMessageService_Timeline(t *testing.T) {
	db := setupTestDB(t)
	auth := newAuthService()
	u1 := signupTestUser(t, db, auth, "testuser")
	u2 := signupTestUser(t, db, auth, "testuser2")
	u3 := signupTestUser(t, db, auth, "testuser3")
	messages := NewMessageService()

	uow := newUnitOfWork(t, db)
	own, err := messages.Create(uow, u1.ID, "own")
	require.NoError(t, err)
	followed, err := messages.Create(uow, u2.ID, "followed")
	require.NoError(t, err)
	_, err = messages.Create(uow, u3.ID, "stranger")
	require.NoError(t, err)
	require.NoError(t, NewSocialService().Follow(uow, u1.ID, u2.ID))

	timeline, err := messages.Timeline(uow, u1.ID, 0)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	ids := []uint64{timeline[0].ID, timeline[1].ID}
	assert.ElementsMatch(t, []uint64{own.ID, followed.ID}, ids)

	limited, err := messages.Timeline(uow, u1.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	mine, err := messages.ListByUser(uow, u2.ID, utils.AllRows)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "followed", mine[0].Text)

	liked, err := messages.LikedByViewer(uow, u3.ID, timeline)
	require.NoError(t, err)
	assert.Empty(t, liked)
}
