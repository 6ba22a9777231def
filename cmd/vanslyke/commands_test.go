package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vanslyke/api"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDerive_TOMLFile(t *testing.T) {
	// GIVEN: A TOML scenario with only cheese composition
	path := filepath.Join(t.TempDir(), "make-0412.toml")
	require.NoError(t, os.WriteFile(path, []byte("fat_cheese = 25\ntotal_solids_cheese = 50\n"), 0o644))

	// WHEN: It is derived
	out, err := run(t, "derive", "--file", path)

	// THEN: FDB is derived and the name comes from the file
	require.NoError(t, err)
	assert.Contains(t, out, "make-0412")
	assert.Contains(t, out, "fdb_from_composition")
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, out, "Unresolved")
}

func TestDerive_NoDiagnostics(t *testing.T) {
	// GIVEN: A preset that leaves headline outputs unresolved
	out, err := run(t, "derive", "--preset", "composition-only")
	require.NoError(t, err)
	assert.Contains(t, out, "Unresolved")

	// WHEN: Diagnostics are turned off
	out, err = run(t, "derive", "--preset", "composition-only", "--no-diagnostics")

	// THEN: Quantities are still printed, the unresolved section is not
	require.NoError(t, err)
	assert.Contains(t, out, "fdb_from_composition")
	assert.NotContains(t, out, "Unresolved")
}

func TestDerive_PresetJSON(t *testing.T) {
	out, err := run(t, "derive", "--preset", "fdb-target", "--json")
	require.NoError(t, err)

	var dto api.DerivationDTO
	require.NoError(t, json.Unmarshal([]byte(out), &dto))
	require.NotNil(t, dto.Scenario)
	assert.Equal(t, "fdb-target", dto.Scenario.ID)

	for _, q := range dto.Results {
		if q.Name == "fdb_from_recoveries" {
			require.NotNil(t, q.Value)
			assert.InEpsilon(t, 52.7, *q.Value, 1e-6)
		}
	}
}

func TestDerive_Errors(t *testing.T) {
	negative := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(negative, []byte(`{"lbs_milk": -5, "rc": -1}`), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"no source", []string{"derive"}},
		{"both sources", []string{"derive", "--file", negative, "--preset", "fdb-target"}},
		{"unknown preset", []string{"derive", "--preset", "gouda"}},
		{"missing file", []string{"derive", "--file", filepath.Join(t.TempDir(), "nope.toml")}},
		{"negative inputs", []string{"derive", "--file", negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestDerive_NegativeInputsAllReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lbs_milk": -5, "rc": -1}`), 0o644))

	_, err := run(t, "derive", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lbs_milk")
	assert.Contains(t, err.Error(), "rc")
}

func TestReferenceCommands(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "cheddar-weighed")

	out, err = run(t, "formulas")
	require.NoError(t, err)
	assert.Contains(t, out, "rf_from_fdb_target")

	out, err = run(t, "requirements")
	require.NoError(t, err)
	assert.Contains(t, out, "casein_fat_ratio_required")
}
