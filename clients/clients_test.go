package clients_test

import (
	"testing"

	"github.com/jrsteele09/go-authz-server/clients"
	"github.com/stretchr/testify/require"
)

func testClient() *clients.Client {
	return &clients.Client{
		ID:           "oauth-client-1",
		Secret:       "oauth-client-secret-1",
		RedirectURIs: []string{"http://localhost:9000/callback"},
		Scopes:       []string{"foo", "bar"},
	}
}

func TestClient_HasRedirectURI(t *testing.T) {
	client := testClient()

	require.True(t, client.HasRedirectURI("http://localhost:9000/callback"))

	t.Run("trailing slash is a mismatch", func(t *testing.T) {
		require.False(t, client.HasRedirectURI("http://localhost:9000/callback/"))
	})

	t.Run("unregistered URI", func(t *testing.T) {
		require.False(t, client.HasRedirectURI("http://evil.example.com/callback"))
	})
}

func TestClient_ValidateScopes(t *testing.T) {
	client := testClient()

	t.Run("subset succeeds", func(t *testing.T) {
		require.NoError(t, client.ValidateScopes([]string{"foo"}))
		require.NoError(t, client.ValidateScopes([]string{"foo", "bar"}))
	})

	t.Run("empty request succeeds", func(t *testing.T) {
		require.NoError(t, client.ValidateScopes(nil))
	})

	t.Run("unregistered token fails", func(t *testing.T) {
		err := client.ValidateScopes([]string{"foo", "baz"})
		require.ErrorIs(t, err, clients.ErrInvalidScope)
	})
}

func TestSplitScopes(t *testing.T) {
	require.Equal(t, []string{"foo", "bar"}, clients.SplitScopes("foo bar"))
	require.Equal(t, []string{"foo", "bar"}, clients.SplitScopes("  foo   bar "))
	require.Empty(t, clients.SplitScopes(""))
	require.Empty(t, clients.SplitScopes("   "))
}
