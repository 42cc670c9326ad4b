package domain

import (
	"errors"
	"testing"

	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func errCode(t *testing.T, err error) errorx.Code {
	t.Helper()
	require.Error(t, err)

	var errx errorx.Error
	require.True(t, errors.As(err, &errx), "expected an errorx error, got %v", err)
	return errx.Code
}
