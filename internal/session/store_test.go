package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realestatead/adctl/internal/authz"
)

func testSession() Session {
	return Session{
		Token: "tok-1",
		User: User{
			ID:    "1",
			Name:  "Jane Doe",
			Email: "jane@acme.com",
			Role:  authz.RoleOrgAdmin,
			OrgID: "7",
		},
	}
}

func TestStore_WriteRead(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Write(testSession()))

	got, err := store.Read()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "Jane Doe", got.User.Name)
	assert.Equal(t, authz.RoleOrgAdmin, got.User.Role)
	assert.Equal(t, "7", got.User.OrgID)
}

func TestStore_ReadMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	got, err := store.Read()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ReadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0o600))

	store := NewStore(dir)
	got, err := store.Read()
	require.NoError(t, err)
	assert.Nil(t, got, "corrupt data must degrade to logged out")
}

func TestStore_ReadPartialRecord(t *testing.T) {
	// A token without a user (or vice versa) must never be observable.
	cases := map[string]string{
		"token only":   `{"token":"t1"}`,
		"user only":    `{"user_data":{"id":"1","role":"ORG_USER"}}`,
		"invalid role": `{"token":"t1","user_data":{"id":"1","role":"ROOT"}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFile), []byte(payload), 0o600))

			got, err := NewStore(dir).Read()
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestStore_WriteRejectsIncomplete(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.Write(Session{User: testSession().User})
	require.Error(t, err)

	err = store.Write(Session{Token: "t1"})
	require.Error(t, err)

	got, err := store.Read()
	require.NoError(t, err)
	assert.Nil(t, got, "rejected writes must leave no session behind")
}

func TestStore_ClearIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Clear(), "clearing an absent session succeeds")

	require.NoError(t, store.Write(testSession()))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	got, err := store.Read()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_WriteReplacesWholeRecord(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Write(testSession()))

	next := Session{
		Token: "tok-2",
		User: User{
			ID:    "9",
			Name:  "System Admin",
			Email: "root@sys.com",
			Role:  authz.RoleSystemAdmin,
			OrgID: SystemOrgID,
		},
	}
	require.NoError(t, store.Write(next))

	got, err := store.Read()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-2", got.Token)
	assert.Equal(t, authz.RoleSystemAdmin, got.User.Role)
	assert.Equal(t, SystemOrgID, got.User.OrgID)
}

func TestStore_FileMode(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Write(testSession()))

	info, err := os.Stat(filepath.Join(dir, sessionFile))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
