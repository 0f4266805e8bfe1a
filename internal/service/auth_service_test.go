package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pb "github.com/mmynk/orderlines/pkg/orderapi"
)

func TestAuthService(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	reg, err := env.auth.Register(ctx, connect.NewRequest(&pb.RegisterRequest{
		Email:       "Dana@Example.com",
		DisplayName: "Dana",
		Password:    "password123",
	}))
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", reg.Msg.User.Email)
	assert.NotEmpty(t, reg.Msg.User.ID)

	t.Run("duplicate registration", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&pb.RegisterRequest{
			Email:       "dana@example.com",
			DisplayName: "Dana",
			Password:    "password123",
		}))
		assert.Equal(t, connect.CodeAlreadyExists, connect.CodeOf(err))
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&pb.RegisterRequest{
			Email:       "erin@example.com",
			DisplayName: "Erin",
			Password:    "short",
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("missing display name", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&pb.RegisterRequest{
			Email:    "erin@example.com",
			Password: "password123",
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("login", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, connect.NewRequest(&pb.LoginRequest{
			Email:    "dana@example.com",
			Password: "password123",
		}))
		require.NoError(t, err)
		assert.Equal(t, reg.Msg.User.ID, resp.Msg.User.ID)
		assert.NotEmpty(t, resp.Msg.Token)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, connect.NewRequest(&pb.LoginRequest{
			Email:    "dana@example.com",
			Password: "wrong-password",
		}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("current user", func(t *testing.T) {
		resp, err := env.auth.GetCurrentUser(ctx, withToken(&pb.GetCurrentUserRequest{}, reg.Msg.Token))
		require.NoError(t, err)
		assert.Equal(t, "Dana", resp.Msg.User.DisplayName)
		assert.Equal(t, reg.Msg.User.CreatedAt, resp.Msg.User.CreatedAt)
	})

	t.Run("current user without token", func(t *testing.T) {
		_, err := env.auth.GetCurrentUser(ctx, connect.NewRequest(&pb.GetCurrentUserRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})
}
