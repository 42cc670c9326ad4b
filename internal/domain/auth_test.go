package domain

import (
	"testing"

	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/internal/testutil"
	"github.com/rewardlab/backend/pkg/authenticator"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newAuthDomain(tokenEngine authenticator.TokenEngine[model.AccessToken]) *authDomain {
	return NewAuthDomain(repository.NewUserRepository(), tokenEngine)
}

func Test_authDomain_RegisterAndLogin(t *testing.T) {
	ctx := testutil.MockContext()
	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](
		xcontext.Configs(ctx).Auth.AccessToken)
	domain := newAuthDomain(tokenEngine)

	registered, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", registered.User.Email)
	require.Equal(t, "USER", registered.User.Role)

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	token, err := tokenEngine.Verify(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, token.ID)
	require.Equal(t, "USER", token.Role)
}

func Test_authDomain_Register_DuplicateEmail(t *testing.T) {
	ctx := testutil.MockContext()
	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](
		xcontext.Configs(ctx).Auth.AccessToken)
	domain := newAuthDomain(tokenEngine)

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice2",
		Password: "battery staple",
	})
	require.Equal(t, errorx.AlreadyExists, errCode(t, err))
}

func Test_authDomain_Register_WeakPassword(t *testing.T) {
	ctx := testutil.MockContext()
	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](
		xcontext.Configs(ctx).Auth.AccessToken)
	domain := newAuthDomain(tokenEngine)

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "short",
	})
	require.Equal(t, errorx.BadRequest, errCode(t, err))
}

func Test_authDomain_Login_InvalidCredentials(t *testing.T) {
	ctx := testutil.MockContext()
	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](
		xcontext.Configs(ctx).Auth.AccessToken)
	domain := newAuthDomain(tokenEngine)

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong password",
	})
	require.Equal(t, errorx.Unauthenticated, errCode(t, err))

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse",
	})
	require.Equal(t, errorx.Unauthenticated, errCode(t, err))
}
