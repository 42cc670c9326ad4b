package authenticator

import (
	"testing"
	"time"

	"github.com/rewardlab/backend/config"
	"github.com/stretchr/testify/require"
)

type tokenObj struct {
	ID   string `json:"id" mapstructure:"id"`
	Role string `json:"role" mapstructure:"role"`
}

func TestTokenEngine(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	})

	token, err := engine.Generate("user1", tokenObj{ID: "user1", Role: "USER"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "USER", obj.Role)
}

func TestTokenEngineInvalidSecret(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "secret",
		Expiration: time.Minute,
	})

	token, err := engine.Generate("user1", tokenObj{ID: "user1", Role: "USER"})
	require.NoError(t, err)

	another := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "another-secret",
		Expiration: time.Minute,
	})

	_, err = another.Verify(token)
	require.Error(t, err)
}

func TestTokenEngineExpired(t *testing.T) {
	engine := NewTokenEngine[tokenObj](config.TokenConfigs{
		Secret:     "secret",
		Expiration: -time.Minute,
	})

	token, err := engine.Generate("user1", tokenObj{ID: "user1", Role: "USER"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}
