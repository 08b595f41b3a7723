package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAlgoConfig_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := LoadAlgoConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAlgoConfig(), cfg)
}

func TestLoadAlgoConfig_OverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "algo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alpha_loss_weight: 250\numcc_enabled: true\n"), 0o644))

	cfg, err := LoadAlgoConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.AlphaLossWeight)
	assert.True(t, cfg.UMCCEnabled)
	assert.Equal(t, DefaultAlgoConfig().BetaThroughputWeight, cfg.BetaThroughputWeight)
}

func TestLoadAlgoConfig_RejectsNonPositiveWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "algo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("umcc_recent_window: 0\n"), 0o644))

	_, err := LoadAlgoConfig(path)
	assert.Error(t, err)
}

func TestResolveScenario_UnknownNameErrors(t *testing.T) {
	_, err := ResolveScenario("S99")
	assert.Error(t, err)
}

func TestResolveScenario_KnownScenarios(t *testing.T) {
	for _, name := range []string{"S1", "S2", "S3", "S4", "S5", "S6"} {
		preset, err := ResolveScenario(name)
		require.NoError(t, err)
		assert.Equal(t, name, preset.Name)
	}
}
