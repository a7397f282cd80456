package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPCmd_Structure(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)
	assert.Equal(t, mcpCmd, mcpServeCmd.Parent())
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_ServicesNotConfigured(t *testing.T) {
	oldSettings, oldFactory := settingsService, servicesFactory
	SetServices(nil, nil)
	defer SetServices(oldSettings, oldFactory)

	_, _, err := execute("mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis services not configured")
}
