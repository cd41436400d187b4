package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeCmd_Use(t *testing.T) {
	assert.Equal(t, "analyze [query]", analyzeCmd.Use)
}

func TestAnalyzeCmd_Short(t *testing.T) {
	assert.Equal(t, "Analyze a policy query end to end", analyzeCmd.Short)
}

func TestAnalyzeCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAnalyzeCmd_HasSectorFlag(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("sector")
	require.NotNil(t, flag, "sector flag should exist")
	assert.Equal(t, "s", flag.Shorthand)
}

func TestAnalyzeCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "water supply scheme in Rajasthan"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Verdict: exact_match")
	assert.Contains(t, buf.String(), "Jal Jeevan Mission")
	assert.Contains(t, buf.String(), "Drift Score: 0.15")
	assert.Contains(t, buf.String(), "Strategist:")
}

func TestAnalyzeCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"analyze", "--json", "water supply"})
	defer func() {
		rootCmd.SetArgs(nil)
		analyzeJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Verdict\"")
	assert.Contains(t, buf.String(), "\"Strategy\"")
}

func TestAnalyzeCmd_ServiceNotConfigured(t *testing.T) {
	oldService := analysisService
	analysisService = nil
	defer func() {
		analysisService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", "query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analysis service not configured")
}

func TestAnalyzeCmd_ServiceError(t *testing.T) {
	oldService := analysisService
	analysisService = &mockAnalysisServiceError{}
	defer func() {
		analysisService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"analyze", "query"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "analysis failed")
}
