package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

var spacecraftIDPattern = regexp.MustCompile(`ID:\s+([0-9a-f-]{36})`)

// setupCLI isolates the commands from the developer environment: a private
// home for user preferences and a throwaway sqlite database
func setupCLI(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("SW_DATABASE_TYPE", "sqlite")
	t.Setenv("SW_DATABASE_PATH", filepath.Join(dir, "shipwright.db"))
	t.Setenv("SW_LOGGING_LEVEL", "error")
	t.Setenv("SW_METRICS_ENABLED", "false")
	t.Setenv("SW_SIMULATION_JOURNAL_DIR", "")
	t.Setenv("SW_CATALOG_PATH", "")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath, playerID, playerName, verbose = "", 0, "", false

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

var tugEdits = []string{
	"--edit", "insert-compartment 0 hull",
	"--edit", "set-module 0 0 tank",
	"--edit", "set-module 0 1 habitat",
	"--edit", "set-module 0 2 tank",
	"--edit", "set-equipment 0 0 thruster",
	"--edit", "set-equipment 0 1 thruster",
	"--edit", "set-equipment 0 2 hatch",
	"--edit", "set-equipment 0 3 engine",
}

func createTug(t *testing.T, name string) string {
	t.Helper()
	args := append([]string{"spacecraft", "create", "--player", "Ada", "--name", name}, tugEdits...)
	out, err := runCLI(t, args...)
	require.NoError(t, err, out)

	match := spacecraftIDPattern.FindStringSubmatch(out)
	require.Len(t, match, 2, out)
	return match[1]
}

func TestCLI_PlayerRegisterAndShow(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "player", "register", "--name", "Ada", "--credits", "2500", "--faction", "miners")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ Player registered successfully")
	assert.Contains(t, out, "2,500 cr")

	out, err = runCLI(t, "player", "show", "--player", "Ada")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Name:      Ada")
	assert.Contains(t, out, "miners")

	out, err = runCLI(t, "player", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Ada")
}

func TestCLI_PlayerRegister_DefaultsCreditsFromConfiguration(t *testing.T) {
	setupCLI(t)
	t.Setenv("SW_SIMULATION_STARTING_CREDITS", "750")

	out, err := runCLI(t, "player", "register", "--name", "Ada")

	require.NoError(t, err, out)
	assert.Contains(t, out, "750 cr")
}

func TestCLI_SpacecraftLifecycle(t *testing.T) {
	setupCLI(t)
	_, err := runCLI(t, "player", "register", "--name", "Ada")
	require.NoError(t, err)

	id := createTug(t, "Pathfinder")

	out, err := runCLI(t, "spacecraft", "list", "--player", "Ada")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Pathfinder")
	assert.Contains(t, out, id)

	out, err = runCLI(t, "spacecraft", "show", id, "--player", "Ada")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Spacecraft Information")
	assert.Contains(t, out, "Name:           Pathfinder")

	out, err = runCLI(t, "spacecraft", "edit", id, "--player", "Ada", "--edit", "rename Wayfarer")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ Applied 1 edits")
}

func TestCLI_SpacecraftCreate_RejectsMalformedEdit(t *testing.T) {
	setupCLI(t)
	_, err := runCLI(t, "player", "register", "--name", "Ada")
	require.NoError(t, err)

	_, err = runCLI(t, "spacecraft", "create", "--player", "Ada", "--name", "Broken", "--edit", "fold-hull 0")

	assert.Error(t, err)
}

func TestCLI_SpacecraftShow_RejectsInvalidID(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "spacecraft", "show", "not-a-uuid", "--player", "Ada")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid spacecraft id")
}

func TestCLI_SimulateDryRun(t *testing.T) {
	setupCLI(t)
	_, err := runCLI(t, "player", "register", "--name", "Ada")
	require.NoError(t, err)
	id := createTug(t, "Pathfinder")

	out, err := runCLI(t, "simulate", id, "--player", "Ada", "--steps", "3", "--step", "1s", "--dry-run")

	require.NoError(t, err, out)
	assert.Contains(t, out, "Simulation Summary")
	assert.Contains(t, out, "Ticks:          3")
	assert.Contains(t, out, "Dry run: nothing saved")
}

func TestCLI_CatalogList(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "catalog", "list")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Resources:")
	assert.Contains(t, out, "refinery")
	assert.Contains(t, out, "hull-wide")

	out, err = runCLI(t, "catalog", "list", "--section", "equipment")
	require.NoError(t, err, out)
	assert.Contains(t, out, "mining-rig")
	assert.NotContains(t, out, "hull-wide")

	_, err = runCLI(t, "catalog", "list", "--section", "stations")
	assert.Error(t, err)
}

func TestCLI_CatalogRecipes(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "catalog", "recipes")

	require.NoError(t, err, out)
	assert.Contains(t, out, "ice-melter")
	assert.Contains(t, out, "Raw resources:")
	assert.Contains(t, out, "Production order:")
}

func TestCLI_CatalogValidate(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`
resources:
  - id: ore
    name: Ore
    type: bulk
modules:
  - id: hold
    name: Hold
    mass: 5
    kind: cargo
    cargo_mass: 100
    cargo_type: bulk
compartments:
  - id: hull
    name: Hull
    mass: 10
    module_slots:
      - { name: Center, socket: ModuleCenter }
`), 0o644))

	out, err := runCLI(t, "catalog", "validate", valid)
	require.NoError(t, err, out)
	assert.Contains(t, out, "is valid: 1 resources, 1 modules, 0 equipment, 1 compartments")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("resources: 12\n"), 0o644))

	_, err = runCLI(t, "catalog", "validate", invalid)
	assert.Error(t, err)
}

func TestParseManeuver(t *testing.T) {
	start := shared.SimulationEpoch

	maneuver, err := parseManeuver("10m:30s:0.5", start)

	require.NoError(t, err)
	assert.Equal(t, start.Add(10*time.Minute), maneuver.Start)
	assert.Equal(t, 30*time.Second, maneuver.Duration)
	assert.InDelta(t, 0.5, maneuver.ThrustFactor, 1e-9)
}

func TestParseManeuver_Rejects(t *testing.T) {
	for _, value := range []string{"10m:30s", "x:30s:1", "1m:0s:1", "1m:30s:1.5", "-1m:30s:1"} {
		_, err := parseManeuver(value, shared.SimulationEpoch)
		assert.Error(t, err, value)
	}
}

func TestParseSwitch(t *testing.T) {
	on, err := parseSwitch("on")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := parseSwitch("false")
	require.NoError(t, err)
	assert.False(t, off)

	_, err = parseSwitch("maybe")
	assert.Error(t, err)
}

func TestFormatMass(t *testing.T) {
	assert.Equal(t, "12.5 T", formatMass(12.5))
	assert.Equal(t, "1.5 kt", formatMass(1500))
}
