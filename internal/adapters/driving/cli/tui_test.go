package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui [FILE...]", tuiCmd.Use)
}

func TestTUICmd_Short(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_HasWatchFlag(t *testing.T) {
	flag := tuiCmd.Flags().Lookup("watch")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestTUICmd_ServicesNotConfigured(t *testing.T) {
	oldSettings, oldFactory := settingsService, servicesFactory
	SetServices(nil, nil)
	defer SetServices(oldSettings, oldFactory)

	_, _, err := execute("tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analysis services not configured")
}

func TestTUICmd_PreloadError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	oldFactory := servicesFactory
	servicesFactory = func(s domain.AppSettings) (*Services, error) {
		svc, err := oldFactory(s)
		if err != nil {
			return nil, err
		}
		svc.Files = &mockFileService{err: errors.New("open a.pdf: permission denied")}
		return svc, nil
	}

	_, _, err := execute("tui", "a.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading files: open a.pdf: permission denied")
}
