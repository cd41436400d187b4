package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "policies.json")
	content := `[
		{"id": 1, "title": "PM-KISAN", "text": "Income support for farmers.", "sector": "PM_KISAN_Beneficiaries", "scope": "National"},
		{"id": 2, "title": "Jal Jeevan Mission", "text": "Piped water for rural households.", "sector": "Water_Sanitation_JJM", "scope": "Rajasthan"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest", ingestCmd.Use)
}

func TestIngestCmd_HasSubcommands(t *testing.T) {
	commands := ingestCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "reset")
	assert.Contains(t, commandNames, "impacts")
}

func TestIngestCmd_RequiresPolicyFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "policy corpus file is required")
}

func TestIngestCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writePolicyFile(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--policies", path})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestPoliciesPath = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Collections reset.")
	assert.Contains(t, buf.String(), "Indexed 2 policies.")
	assert.Contains(t, buf.String(), "Synced 96 impact records.")
}

func TestIngestCmd_SkipImpacts(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writePolicyFile(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "--policies", path, "--skip-impacts"})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestPoliciesPath = ""
		ingestSkipImpacts = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Indexed 2 policies.")
	assert.NotContains(t, buf.String(), "Synced")
}

func TestIngestResetCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "reset"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Collections reset.")
}

func TestIngestImpactsCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "impacts"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Synced 96 impact records.")
}

func TestIngestCmd_ServiceNotConfigured(t *testing.T) {
	oldService := ingestService
	ingestService = nil
	defer func() {
		ingestService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest", "reset"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}

func TestLoadPolicyFile_MissingFile(t *testing.T) {
	_, err := loadPolicyFile(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "reading policy corpus")
}

func TestLoadPolicyFile_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := loadPolicyFile(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing policy corpus")
}
