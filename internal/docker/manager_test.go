package docker

import (
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "berth-indexer-postgres", ContainerName("indexer", "postgres"))
	assert.Equal(t, "berth-indexer", NetworkName("indexer"))
}

func TestPortMaps(t *testing.T) {
	exposed, bindings, err := portMaps([]string{"5432:5432", "8000:80"})
	require.NoError(t, err)

	require.Contains(t, exposed, nat.Port("5432/tcp"))
	require.Contains(t, exposed, nat.Port("80/tcp"))

	pg := bindings[nat.Port("5432/tcp")]
	require.Len(t, pg, 1)
	assert.Equal(t, "5432", pg[0].HostPort)
	assert.Equal(t, "0.0.0.0", pg[0].HostIP)

	web := bindings[nat.Port("80/tcp")]
	require.Len(t, web, 1)
	assert.Equal(t, "8000", web[0].HostPort)
}

func TestPortMapsRejectsGarbage(t *testing.T) {
	_, _, err := portMaps([]string{"not-a-port:80"})
	assert.Error(t, err)
}

func TestPortMapsEmpty(t *testing.T) {
	exposed, bindings, err := portMaps(nil)
	require.NoError(t, err)
	assert.Empty(t, exposed)
	assert.Empty(t, bindings)
}
