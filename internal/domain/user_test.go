package domain

import (
	"testing"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/internal/testutil"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_Get(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository())

	// An empty id means myself.
	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err := domain.Get(userCtx, &model.GetUserRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.ID)

	// A regular user cannot read someone else.
	_, err = domain.Get(userCtx, &model.GetUserRequest{ID: testutil.User2.ID})
	require.Equal(t, errorx.PermissionDenied, errCode(t, err))

	// An auditor can.
	auditorCtx := testutil.MockContextWithUserID(ctx, testutil.Auditor.ID)
	resp, err = domain.Get(auditorCtx, &model.GetUserRequest{ID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.ID)
}

func Test_userDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository())

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	_, err := domain.GetList(userCtx, &model.GetListUserRequest{})
	require.Equal(t, errorx.PermissionDenied, errCode(t, err))

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	resp, err := domain.GetList(adminCtx, &model.GetListUserRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Users, 5)

	resp, err = domain.GetList(adminCtx, &model.GetListUserRequest{
		Role: string(entity.RoleUser),
	})
	require.NoError(t, err)
	require.Len(t, resp.Users, 2)

	_, err = domain.GetList(adminCtx, &model.GetListUserRequest{Role: "WIZARD"})
	require.Equal(t, errorx.BadRequest, errCode(t, err))
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository())

	// Only an admin can change roles, an operator cannot.
	operatorCtx := testutil.MockContextWithUserID(ctx, testutil.Operator.ID)
	_, err := domain.Update(operatorCtx, &model.UpdateUserRequest{
		ID:   testutil.User1.ID,
		Role: string(entity.RoleOperator),
	})
	require.Equal(t, errorx.PermissionDenied, errCode(t, err))

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)
	resp, err := domain.Update(adminCtx, &model.UpdateUserRequest{
		ID:   testutil.User1.ID,
		Role: string(entity.RoleOperator),
	})
	require.NoError(t, err)
	require.Equal(t, string(entity.RoleOperator), resp.User.Role)

	_, err = domain.Update(adminCtx, &model.UpdateUserRequest{
		ID:   testutil.User1.ID,
		Role: "WIZARD",
	})
	require.Equal(t, errorx.BadRequest, errCode(t, err))
}

func Test_userDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := NewUserDomain(repository.NewUserRepository())

	adminCtx := testutil.MockContextWithUserID(ctx, testutil.Admin.ID)

	_, err := domain.Delete(adminCtx, &model.DeleteUserRequest{ID: testutil.Admin.ID})
	require.Equal(t, errorx.BadRequest, errCode(t, err))

	_, err = domain.Delete(adminCtx, &model.DeleteUserRequest{ID: testutil.User2.ID})
	require.NoError(t, err)

	_, err = domain.Get(adminCtx, &model.GetUserRequest{ID: testutil.User2.ID})
	require.Equal(t, errorx.NotFound, errCode(t, err))
}
