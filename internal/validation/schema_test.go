package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validCaseYAML = `id: fizzbuzz
name: FizzBuzz
category: coding
difficulty: beginner
scenario:
  task: Write fizzbuzz for 1..15
expected:
  type: exact
  content: "1 2 fizz 4 buzz"
scoring:
  accuracy: 40
  completeness: 30
  creativity: 20
  efficiency: 10
`

const invalidCaseYAML = `id: fizzbuzz
name: FizzBuzz
difficulty: impossible
scenario:
  task: Write fizzbuzz
expected:
  type: exact
scoring:
  accuracy: -5
  completeness: 30
  creativity: 20
  efficiency: 10
`

func joinErrs(errs []string) string {
	return strings.Join(errs, "\n")
}

func TestValidateCaseBytes_Valid(t *testing.T) {
	errs := ValidateCaseBytes([]byte(validCaseYAML))
	require.Empty(t, errs, "valid case should have no errors")
}

func TestValidateCaseBytes_Invalid(t *testing.T) {
	errs := ValidateCaseBytes([]byte(invalidCaseYAML))
	require.NotEmpty(t, errs, "invalid case should have errors")

	joined := joinErrs(errs)
	require.Contains(t, joined, "difficulty")
	require.Contains(t, joined, "accuracy")
}

func TestValidateCaseBytes_MissingRequired(t *testing.T) {
	errs := ValidateCaseBytes([]byte("name: no id\n"))
	require.NotEmpty(t, errs)
	require.Contains(t, joinErrs(errs), "id")
}

func TestValidateCaseBytes_PatternRequiresPattern(t *testing.T) {
	yaml := `id: re-case
name: Regex case
scenario:
  task: Match something
expected:
  type: pattern
scoring:
  accuracy: 25
  completeness: 25
  creativity: 25
  efficiency: 25
`
	errs := ValidateCaseBytes([]byte(yaml))
	require.NotEmpty(t, errs)
	require.Contains(t, joinErrs(errs), "pattern")
}

func TestValidateCaseBytes_NotYAML(t *testing.T) {
	errs := ValidateCaseBytes([]byte("id: [unclosed"))
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0], "YAML parse error")
}

func TestValidateCaseFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "case.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validCaseYAML), 0644))

	errs, err := ValidateCaseFile(path)
	require.NoError(t, err)
	require.Empty(t, errs)

	_, err = ValidateCaseFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
