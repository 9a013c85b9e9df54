package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/hyecheol123/generic-auth-api/internal/domain/errors"
)

func newChangePassword(env *testEnv) *ChangePassword {
	return NewChangePassword(newVerifier(env, DefaultRenewWindow), env.users, env.hasher)
}

func TestChangePasswordSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "testuser", "Password13!", false)
	caller := env.loginUser(t, "testuser", "Password13!")
	other := env.loginUser(t, "testuser", "Password13!")

	err := newChangePassword(env).Execute(context.Background(), ChangePasswordInput{
		RefreshToken:    caller.RefreshToken,
		CurrentPassword: "Password13!",
		NewPassword:     "NewPassword42!",
	})
	require.NoError(t, err)

	// Other sessions are pruned, the caller's survives.
	_, err = env.sessions.GetByToken(context.Background(), other.RefreshToken)
	assert.ErrorIs(t, err, domerrors.ErrSessionNotFound)
	_, err = env.sessions.GetByToken(context.Background(), caller.RefreshToken)
	assert.NoError(t, err)

	// The old password no longer works, the new one does.
	_, err = env.login.Execute(context.Background(), LoginInput{Username: "testuser", Password: "Password13!"})
	assert.ErrorIs(t, err, domerrors.ErrAuthenticationFailed)
	_, err = env.login.Execute(context.Background(), LoginInput{Username: "testuser", Password: "NewPassword42!"})
	assert.NoError(t, err)
}

func TestChangePasswordRejectsWrongCurrentPassword(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "testuser", "Password13!", false)
	caller := env.loginUser(t, "testuser", "Password13!")

	err := newChangePassword(env).Execute(context.Background(), ChangePasswordInput{
		RefreshToken:    caller.RefreshToken,
		CurrentPassword: "Wrong13!",
		NewPassword:     "NewPassword42!",
	})
	assert.ErrorIs(t, err, domerrors.ErrAuthenticationFailed)

	// Credential unchanged.
	_, err = env.login.Execute(context.Background(), LoginInput{Username: "testuser", Password: "Password13!"})
	assert.NoError(t, err)
}

func TestChangePasswordRejectsInvalidToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "testuser", "Password13!", false)

	err := newChangePassword(env).Execute(context.Background(), ChangePasswordInput{
		RefreshToken:    "garbage",
		CurrentPassword: "Password13!",
		NewPassword:     "NewPassword42!",
	})
	assert.ErrorIs(t, err, domerrors.ErrAuthenticationFailed)
}

func TestAuthorize(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "testuser", "Password13!", false)
	caller := env.loginUser(t, "testuser", "Password13!")
	uc := newChangePassword(env)

	username, err := uc.Authorize(context.Background(), caller.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "testuser", username)

	_, err = uc.Authorize(context.Background(), "")
	assert.ErrorIs(t, err, domerrors.ErrAuthenticationFailed)
	_, err = uc.Authorize(context.Background(), "garbage")
	assert.ErrorIs(t, err, domerrors.ErrAuthenticationFailed)
}

func TestChangePasswordSaltStaysStable(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.seedUser(t, "testuser", "Password13!", false)
	caller := env.loginUser(t, "testuser", "Password13!")

	err := newChangePassword(env).Execute(context.Background(), ChangePasswordInput{
		RefreshToken:    caller.RefreshToken,
		CurrentPassword: "Password13!",
		NewPassword:     "NewPassword42!",
	})
	require.NoError(t, err)

	// The digest is derived from the original membership timestamp.
	stored := env.users.users["testuser"]
	assert.Equal(t, seeded.MemberSince, stored.MemberSince)
	assert.Equal(t, env.hasher.Hash("testuser", seeded.MemberSince, "NewPassword42!"), stored.Password)
}
