package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_HasDetectAndInitSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["detect"])
	assert.True(t, names["init"])
}

func TestNewDetectCmd_DefaultFlagValues(t *testing.T) {
	cmd := NewDetectCmd()
	threshold, err := cmd.Flags().GetFloat64("threshold")
	assert.NoError(t, err)
	assert.Equal(t, 0.87, threshold)

	minLines, err := cmd.Flags().GetInt("min-lines")
	assert.NoError(t, err)
	assert.Equal(t, 5, minLines)

	exts, err := cmd.Flags().GetStringSlice("extensions")
	assert.NoError(t, err)
	assert.Equal(t, []string{"py"}, exts)
}
