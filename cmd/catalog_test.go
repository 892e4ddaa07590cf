package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir()) // no config.yaml, defaults only

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestCatalogCommand(t *testing.T) {
	out := runCommand(t, "catalog")
	assert.Contains(t, out, "Dense_Urban_High_Rise (10 locations)")
	assert.Contains(t, out, "Desert_Area (10 locations)")
	assert.Contains(t, out, "25 categories, 250 locations total")
}

func TestCatalogCommandVerboseSingle(t *testing.T) {
	out := runCommand(t, "catalog", "--category", "Airport_Vicinity", "-v")
	assert.Contains(t, out, "Airport_Vicinity (10 locations)")
	assert.Contains(t, out, "JFK_Airport_NYC")
	assert.Contains(t, out, "1 categories, 10 locations total")
	assert.NotContains(t, out, "Desert_Area")
}

func TestLocateCommand(t *testing.T) {
	out := runCommand(t, "locate", "--", "40.7580", "-73.9855")
	assert.Contains(t, out, "Scenes containing (40.7580, -73.9855)")
	assert.Contains(t, out, "Dense_Urban_High_Rise/Times_Square_NYC")
	assert.Contains(t, out, "Nearest 3 scene centers")
}

func TestStatusCommandEmpty(t *testing.T) {
	out := runCommand(t, "status")
	assert.Contains(t, out, "0/250 artifacts present")
}
