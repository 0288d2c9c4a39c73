package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigBytes(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantErrs int
		contains string
	}{
		{
			name: "valid full config",
			yaml: `
paths:
  results: raw/
  samples: samples/
sampling:
  correct_sample_size: 30
  batch_size: 100
raters:
  true_precedence: [hyejin, minsu]
scoring:
  bootstrap_seed: 42
`,
		},
		{
			name: "empty config is valid",
			yaml: "",
		},
		{
			name:     "unknown top-level key",
			yaml:     "smapling:\n  batch_size: 100\n",
			wantErrs: 1,
		},
		{
			name:     "negative batch size",
			yaml:     "sampling:\n  batch_size: -1\n",
			wantErrs: 1,
			contains: "/sampling/batch_size",
		},
		{
			name:     "duplicate raters",
			yaml:     "raters:\n  true_precedence: [a, a]\n",
			wantErrs: 1,
		},
		{
			name:     "wrong type",
			yaml:     "sampling:\n  sample_seed: not-a-number\n",
			wantErrs: 1,
		},
		{
			name:     "unparseable yaml",
			yaml:     "paths: [a: b\n",
			wantErrs: 1,
			contains: "YAML parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateConfigBytes([]byte(tt.yaml))
			assert.Len(t, errs, tt.wantErrs, "errors: %v", errs)
			if tt.contains != "" {
				require.NotEmpty(t, errs)
				assert.Contains(t, errs[0], tt.contains)
			}
		})
	}
}

func TestValidateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gavel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampling:\n  id_width: 4\n"), 0o644))

	errs, err := ValidateConfigFile(path)
	require.NoError(t, err)
	assert.Empty(t, errs)

	_, err = ValidateConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
