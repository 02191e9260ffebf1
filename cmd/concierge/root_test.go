package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/concierge"
	"github.com/aretw0/concierge/internal/adapters/file"
	"github.com/aretw0/concierge/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "concierge version "+strings.TrimSpace(concierge.Version)+"\n", out)
}

func TestCatalogValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
hotels:
  - name: Pension Mond
    country: Deutschland
    city: Köln
    price: 70
intents:
  - intent: buchen
    keywords: [buchen]
`), 0644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"hotels":[{"name":"X","country":"Y","city":"Z","price":0}]}`), 0644))

	out, err := execute(t, "catalog", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog is valid")
	assert.Contains(t, out, "1 accommodations, 1 intents")

	_, err = execute(t, "catalog", "validate", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidCatalog)
}

func TestCatalogLsCommand(t *testing.T) {
	out, err := execute(t, "catalog", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "Hotel Adler")
	assert.Contains(t, out, "$120")
}

func TestSessionCommands(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()
	for _, id := range []string{"anna", "ben"} {
		sess := domain.NewSession(id)
		sess.State = sess.State.WithStep(domain.StepSelectHotel)
		require.NoError(t, store.Save(ctx, id, sess))
	}

	storeFlags := []string{"--store", "file", "--store-dir", dir}

	out, err := execute(t, append(storeFlags, "session", "ls")...)
	require.NoError(t, err)
	assert.Contains(t, out, "- anna")
	assert.Contains(t, out, "- ben")

	out, err = execute(t, append(storeFlags, "session", "inspect", "anna")...)
	require.NoError(t, err)
	assert.Contains(t, out, `"step": "select_hotel"`)

	_, err = execute(t, append(storeFlags, "session", "inspect", "nobody")...)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	out, err = execute(t, append(storeFlags, "session", "rm", "--all=false", "anna")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed session 'anna'")

	out, err = execute(t, append(storeFlags, "session", "rm", "--all")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed session 'ben'")

	out, err = execute(t, append(storeFlags, "session", "ls")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No active sessions found.")
}

func TestUnknownStoreBackend(t *testing.T) {
	_, err := execute(t, "--store", "etcd", "session", "ls")
	assert.ErrorContains(t, err, "unknown store backend")
}
