package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailVerificationFlow(t *testing.T) {
	r := newTestRepo(t)
	user := createTestUser(t, r)
	assert.False(t, user.EmailVerified)

	require.NoError(t, r.SetVerificationCode(user.ID, "1234", time.Now().Add(15*time.Minute)))

	got, err := r.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EmailVerificationCode)
	assert.Equal(t, "1234", *got.EmailVerificationCode)
	require.NotNil(t, got.LastCodeRequestAt)

	require.NoError(t, r.MarkEmailVerified(user.ID))

	got, err = r.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
	assert.Nil(t, got.EmailVerificationCode)
}

func TestConfirmNewEmail(t *testing.T) {
	r := newTestRepo(t)
	user := createTestUser(t, r)

	// Без ожидающей смены email подтверждать нечего
	require.Error(t, r.ConfirmNewEmail(user.ID))

	require.NoError(t, r.SetNewEmailCode(user.ID, "fresh@example.com", "5678"))
	require.NoError(t, r.ConfirmNewEmail(user.ID))

	got, err := r.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh@example.com", got.Email)
	assert.Nil(t, got.NewEmail)
	assert.Nil(t, got.NewEmailVerificationCode)
}

func TestUpdatePassword(t *testing.T) {
	r := newTestRepo(t)
	user := createTestUser(t, r)

	require.NoError(t, r.UpdatePassword(user.ID, "newhash", "newsalt"))

	got, err := r.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "newhash", got.PasswordHash)
	assert.Equal(t, "newsalt", got.PasswordSalt)
}

func TestUserExistsByEmail(t *testing.T) {
	r := newTestRepo(t)
	user := createTestUser(t, r)

	exists, err := r.UserExistsByEmail(user.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = r.UserExistsByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
