package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "policypulse", rootCmd.Use)
}

func TestRootCmd_HasExpectedCommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "analyze")
	assert.Contains(t, commandNames, "recommend")
	assert.Contains(t, commandNames, "drift")
	assert.Contains(t, commandNames, "feedback")
	assert.Contains(t, commandNames, "status")
	assert.Contains(t, commandNames, "ingest")
	assert.Contains(t, commandNames, "serve")
	assert.Contains(t, commandNames, "config")
	assert.Contains(t, commandNames, "version")
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestConfigDirFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"separate value", []string{"--config-dir", "/tmp/pp", "status"}, "/tmp/pp"},
		{"equals form", []string{"--config-dir=/tmp/pp", "status"}, "/tmp/pp"},
		{"absent", []string{"status"}, ""},
		{"trailing flag without value", []string{"status", "--config-dir"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, configDirFromArgs(tt.args))
		})
	}
}
