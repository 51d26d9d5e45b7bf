package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSchemaCmd(t *testing.T) {
	code, out, errOut := runCLI("schema", "-f", "testdata/models.yaml", "-model", "Car", "-indent")
	require.Equal(t, 0, code, errOut)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"brand": {"type": "string"}, "registration": {"type": "string"}},
		"required": ["brand", "registration"],
		"additionalProperties": false
	}`, out)

	code, out, _ = runCLI("schema", "-f", "testdata/models.yaml", "-model", "Person")
	require.Equal(t, 0, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, []any{"name", "surname"}, doc["required"])
}

func TestValidateCmd(t *testing.T) {
	code, out, errOut := runCLI("validate", "-f", "testdata/models.yaml", "-model", "Person", "-data", "testdata/chuck.json", "-strip")
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "ok\n", out)

	code, _, errOut = runCLI("validate", "-f", "testdata/models.yaml", "-model", "Person", "-data", "testdata/chuck.json")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown_key at nickname")

	code, _, errOut = runCLI("validate", "-f", "testdata/models.yaml", "-model", "Person", "-data", "testdata/nosurname.json")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "required at surname: field is required")
}

func TestNormalizeCmd(t *testing.T) {
	code, out, errOut := runCLI("normalize", "-f", "testdata/models.yaml", "-model", "Person", "-data", "testdata/chuck.json", "-strip")
	require.Equal(t, 0, code, errOut)
	assert.JSONEq(t, `{
		"name": "Chuck",
		"surname": "Norris",
		"age": 70,
		"pets": [{"name": "Odie", "breed": "beagle"}]
	}`, out)
}

func TestUsageAndFlagErrors(t *testing.T) {
	code, _, errOut := runCLI()
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "Usage:")

	code, _, _ = runCLI("compile")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI("schema", "-f", "testdata/models.yaml")
	assert.Equal(t, 2, code, "-model is required")

	code, _, errOut = runCLI("schema", "-f", "testdata/models.yaml", "-model", "Boat")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `model "Boat" not found`)
}

func TestVerboseLogging(t *testing.T) {
	code, _, errOut := runCLI("validate", "-v", "-f", "testdata/models.yaml", "-model", "Person", "-data", "testdata/chuck.json", "-strip")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, errOut, "Model selected.")
	assert.Contains(t, errOut, "Reconstructing record.")
}
