package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStarterManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteStarter(dir, DefaultFileName))

	stack, err := Load(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)

	assert.Equal(t, "indexer", stack.Name)

	activeNames := []string{}
	for _, svc := range stack.Active() {
		activeNames = append(activeNames, svc.Name)
	}
	assert.Equal(t, []string{"ipfs", "postgres", "prometheus", "grafana"}, activeNames)
	assert.Len(t, stack.Services, 6)

	postgres, ok := stack.Lookup("postgres")
	require.True(t, ok)
	assert.Equal(t, []string{"postgres", "-cshared_preload_libraries=pg_stat_statements"}, postgres.Command)
	assert.Contains(t, postgres.Environment, "POSTGRES_USER=indexer")
	assert.Contains(t, postgres.Environment, "PGDATA=/var/lib/postgresql/data")

	prometheus, ok := stack.Lookup("prometheus")
	require.True(t, ok)
	assert.Contains(t, prometheus.Command, "--web.enable-lifecycle")
	assert.Contains(t, prometheus.Volumes, "prometheus/prometheus.yml:/etc/prometheus/prometheus.yml")

	indexNode, ok := stack.Lookup("index-node")
	require.True(t, ok)
	assert.True(t, indexNode.Disabled)
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DefaultFileName))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "berth init")
}

func TestStarterManifestValidates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteStarter(dir, DefaultFileName))

	stack, err := Load(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	assert.Empty(t, stack.Validate())
}

func TestWriteStarterRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteStarter(dir, DefaultFileName))
	assert.Error(t, WriteStarter(dir, DefaultFileName))
}

func TestWriteStarterCreatesScaffold(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteStarter(dir, DefaultFileName))

	assert.DirExists(t, filepath.Join(dir, "data", "ipfs"))
	assert.DirExists(t, filepath.Join(dir, "data", "postgres"))
	assert.DirExists(t, filepath.Join(dir, "data", "prometheus"))
	assert.DirExists(t, filepath.Join(dir, "grafana", "provisioning"))
	assert.FileExists(t, filepath.Join(dir, "prometheus", "prometheus.yml"))
	assert.FileExists(t, filepath.Join(dir, "grafana", "grafana.ini"))
}
