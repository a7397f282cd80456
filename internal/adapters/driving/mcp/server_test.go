package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil session returns error", func(t *testing.T) {
		ports := &Ports{Files: &mockFileService{}}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSession)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports, _ := testPorts(&mockAnalysisClient{})
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing file service", func(t *testing.T) {
		ports, _ := testPorts(&mockAnalysisClient{})
		ports.Files = nil
		assert.ErrorIs(t, ports.Validate(), ErrMissingFileService)
	})

	t.Run("links and exporter are optional", func(t *testing.T) {
		ports, _ := testPorts(&mockAnalysisClient{})
		ports.Links = nil
		ports.Exporter = nil
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_resolve(t *testing.T) {
	ports, _ := testPorts(&mockAnalysisClient{})
	server, err := NewServer(ports)
	require.NoError(t, err)

	assert.Equal(t, "http://analysis.test/p1.png", server.resolve("/p1.png"))

	ports.Links = nil
	assert.Equal(t, "/p1.png", server.resolve("/p1.png"))
}
