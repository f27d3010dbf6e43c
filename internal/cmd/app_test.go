package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestatead/adctl/internal/api"
	"github.com/realestatead/adctl/internal/auth"
	"github.com/realestatead/adctl/internal/authz"
	"github.com/realestatead/adctl/internal/session"
)

func TestBuildApp_ForcedLogoutDropsCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("ADCTL_CONFIG_DIR", dir)
	t.Setenv("ADCTL_API_URL", srv.URL)

	store := session.NewStore(dir)
	require.NoError(t, store.Write(session.Session{
		Token: "tok-1",
		User: session.User{
			ID:    "1",
			Name:  "Jane Doe",
			Email: "jane@acme.com",
			Role:  authz.RoleOrgAdmin,
			OrgID: "7",
		},
	}))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	app, err := buildApp(cmd)
	require.NoError(t, err)

	// prime the cache with the current-user read every guard depends on
	_, err = app.cache.Get(cmd.Context(), auth.UserCacheKey, func(ctx context.Context) (any, error) {
		return app.gateway.CurrentUser()
	})
	require.NoError(t, err)
	_, ok := app.cache.Peek(auth.UserCacheKey)
	require.True(t, ok)

	err = app.client.Get(cmd.Context(), "/users", nil)
	require.True(t, api.IsUnauthenticated(err))

	_, ok = app.cache.Peek(auth.UserCacheKey)
	assert.False(t, ok, "a forced logout drops every cached read")

	sess, err := app.sessions.Read()
	require.NoError(t, err)
	assert.Nil(t, sess)
}
