package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "github.com/komekovv/zen-moda-client-sub000/internal/infra/config"
)

func TestResolveRuntimeSettings(t *testing.T) {
	s, warns, err := ResolveRuntimeSettings(&appcfg.Config{
		ProductStore:   " MySQL ",
		PhotoBucket:    "photos",
		PhotoSignURLs:  true,
		PhotoSignedTTL: 10 * time.Minute,
	})
	require.NoError(t, err)
	assert.Empty(t, warns)
	assert.Equal(t, appcfg.StoreMySQL, s.ProductStore)
	assert.Equal(t, "photos", s.PhotoBucket)
	assert.Equal(t, appcfg.DefaultColorTables(), s.ColorTables)
}

func TestResolveRuntimeSettings_Warnings(t *testing.T) {
	_, warns, err := ResolveRuntimeSettings(&appcfg.Config{ProductStore: "firestore"})
	require.NoError(t, err)
	assert.Len(t, warns, 1)
}

func TestResolveRuntimeSettings_Errors(t *testing.T) {
	_, _, err := ResolveRuntimeSettings(nil)
	assert.Error(t, err)

	_, _, err = ResolveRuntimeSettings(&appcfg.Config{PhotoSignURLs: true})
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "colors.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("hex:\n  Red: red\n"), 0o600))
	_, _, err = ResolveRuntimeSettings(&appcfg.Config{ColorTableFile: bad})
	assert.Error(t, err)
}

func TestRedactPath(t *testing.T) {
	assert.Equal(t, "***/sa.json", redactPath(`C:\keys\sa.json`))
	assert.Equal(t, "***/sa.json", redactPath("/etc/keys/sa.json"))
	assert.Equal(t, "***", redactPath("/etc/keys/"))
	assert.Equal(t, "", redactPath(" "))
}

func TestInfra_DBPassword(t *testing.T) {
	inf := &Infra{Config: &appcfg.Config{DBPassword: "plain"}}
	pw, err := inf.dbPassword(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "plain", pw)

	inf.Config.DBPasswordSecret = "db-password"
	_, err = inf.dbPassword(t.Context())
	assert.ErrorContains(t, err, "secret manager is not configured")
}

func TestInfra_CloseNil(t *testing.T) {
	var inf *Infra
	assert.NoError(t, inf.Close())
	assert.NoError(t, (&Infra{}).Close())
}
