package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := strings.ReplaceAll(`
[general]
data_dir = "DIR"
log_format = "text"

[history]
enabled = true
path = "DIR/history.db"

[calculators]
currency = "EUR"
`, "DIR", filepath.ToSlash(dir))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

type outcome struct {
	Calculator string                 `json:"calculator"`
	Status     string                 `json:"status"`
	Inputs     map[string]string      `json:"inputs"`
	Result     map[string]interface{} `json:"result"`
}

func runJSON(t *testing.T, cfgPath string, args ...string) outcome {
	t.Helper()
	text, err := run(t, cfgPath, append([]string{"-o", "json"}, args...)...)
	require.NoError(t, err, text)
	var out outcome
	require.NoError(t, json.Unmarshal([]byte(text), &out), text)
	return out
}

func TestCalculatorCommandText(t *testing.T) {
	cfg := writeConfig(t)

	text, err := run(t, cfg, "discount", "--price", "100", "--percent", "20")
	require.NoError(t, err)
	assert.Contains(t, text, "Endpreis")
	assert.Contains(t, text, "€80.00")
}

func TestCalculatorCommandJSON(t *testing.T) {
	cfg := writeConfig(t)

	out := runJSON(t, cfg, "dog-age", "--years", "5", "--method", "traditional")
	assert.Equal(t, "dog-age", out.Calculator)
	assert.Equal(t, "ok", out.Status)
	assert.Equal(t, "5", out.Inputs["years"])
	assert.InDelta(t, 39.0, out.Result["human_age"], 1e-9)
}

func TestCalculatorCommandRows(t *testing.T) {
	cfg := writeConfig(t)

	out := runJSON(t, cfg, "gpa",
		"--course", "name=Mathe,credits=3,grade=A",
		"--course", "credits=1, grade=B")
	assert.InDelta(t, 3.75, out.Result["gpa"], 1e-9)
	assert.Equal(t, "Mathe", out.Inputs["course.0.name"])

	out = runJSON(t, cfg, "average", "--number", "4", "--number", "8", "--number", "15")
	assert.InDelta(t, 9.0, out.Result["mean"], 1e-9)

	_, err := run(t, cfg, "gpa", "--course", "points=3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points")
}

func TestCalcGeneric(t *testing.T) {
	cfg := writeConfig(t)

	out := runJSON(t, cfg, "calc", "percent-of", "percent=15", "value=80")
	assert.Equal(t, "12", out.Result["amount"])

	text, err := run(t, cfg, "-o", "yaml", "calc", "ratio", "a=16", "b=9")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(text), &doc))
	assert.Equal(t, "ratio", doc["calculator"])

	_, err = run(t, cfg, "calc", "ratio", "a")
	require.Error(t, err)

	_, err = run(t, cfg, "calc", "bmi")
	require.Error(t, err)
}

func TestCalculationErrors(t *testing.T) {
	cfg := writeConfig(t)

	_, err := run(t, cfg, "tip", "--bill", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bill")

	_, err = run(t, cfg, "ratio", "--a", "1", "--b", "0")
	require.Error(t, err)

	_, err = run(t, cfg, "-o", "xml", "version")
	require.Error(t, err)
}

func TestHistory(t *testing.T) {
	cfg := writeConfig(t)

	_, err := run(t, cfg, "discount", "--price", "50", "--percent", "10")
	require.NoError(t, err)
	_, err = run(t, cfg, "ratio", "--a", "1", "--b", "0")
	require.Error(t, err)

	text, err := run(t, cfg, "-o", "json", "history")
	require.NoError(t, err)
	var entries []struct {
		Calculator string `json:"calculator"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(text), &entries))
	require.Len(t, entries, 2)

	text, err = run(t, cfg, "history", "--status", "declined")
	require.NoError(t, err)
	assert.Contains(t, text, "[-]")
	assert.Contains(t, text, "DIVISION_BY_ZERO")
	assert.NotContains(t, text, "discount")

	text, err = run(t, cfg, "history", "stats")
	require.NoError(t, err)
	assert.Contains(t, text, "Berechnungen gesamt: 2")

	text, err = run(t, cfg, "history", "prune", "--days", "1")
	require.NoError(t, err)
	assert.Contains(t, text, "0 Einträge gelöscht")
}

func TestCalculators(t *testing.T) {
	cfg := writeConfig(t)

	text, err := run(t, cfg, "calculators")
	require.NoError(t, err)
	assert.Contains(t, text, "Finanzen:")
	assert.Contains(t, text, "22 Rechner")

	text, err = run(t, cfg, "-o", "json", "calculators")
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &list))
	assert.Len(t, list, 22)
}

func TestVersion(t *testing.T) {
	text, err := run(t, writeConfig(t), "version")
	require.NoError(t, err)
	assert.Contains(t, text, "meinRECHENWERK v")
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"a=1", " b =x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, got)

	_, err = parseAssignments([]string{"=1"})
	assert.Error(t, err)
}
