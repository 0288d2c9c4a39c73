package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantRows int
		wantErr  string
	}{
		{
			name:     "happy path",
			csv:      "question_id,answer,gold_answer\nq1,A,A\nq2,B,C\nq3,\"A, B\",AB\n",
			wantRows: 3,
		},
		{
			name:     "leading BOM stripped",
			csv:      "\xef\xbb\xbfquestion_id,answer\nq1,A\n",
			wantRows: 1,
		},
		{
			name:     "headers only",
			csv:      "question_id,answer\n",
			wantRows: 0,
		},
		{
			name:    "mismatched column count",
			csv:     "question_id,answer\nq1,A\nq2\n",
			wantErr: "wrong number of fields",
		},
		{
			name:    "empty file",
			csv:     "",
			wantErr: "no header row",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), "test.csv", tt.csv)

			rows, err := LoadCSV(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, rows, tt.wantRows)
		})
	}
}

func TestLoadCSVMapsColumns(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "t.csv", "a,b\n1,2\n3,4\n")

	rows, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{"a": "1", "b": "2"}, rows[0])
	assert.Equal(t, Row{"a": "3", "b": "4"}, rows[1])
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open")
}

func TestSaveCSVWritesBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "samples.csv")

	err := SaveCSV(path, []string{"id", "answer"}, []Row{
		{"id": "0001", "answer": "ABC"},
		{"id": "0002"}, // missing cell becomes empty string
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xef, 0xbb, 0xbf}, data[:3], "exports must start with a UTF-8 BOM")
	assert.Equal(t, "id,answer\n0001,ABC\n0002,\n", string(data[3:]))
}

func TestSaveCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.csv")
	in := []Row{
		{"id": "0001", "answer": "ABC", "ignored": "dropped"},
		{"id": "0002", "answer": "한국어 답변"},
	}

	require.NoError(t, SaveCSV(path, []string{"id", "answer"}, in))

	out, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "ABC", out[0]["answer"])
	assert.Equal(t, "한국어 답변", out[1]["answer"])
	_, hasDropped := out[0]["ignored"]
	assert.False(t, hasDropped)
}

func TestSaveCSVNoColumns(t *testing.T) {
	err := SaveCSV(filepath.Join(t.TempDir(), "x.csv"), nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns")
}

func TestHeaders(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "h.csv", "\xef\xbb\xbfa,b,c\n1,2,3\n")
	headers, err := Headers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, headers)
}

func TestRenameColumns(t *testing.T) {
	rows := []Row{{"old": "v", "keep": "k"}}
	out := RenameColumns(rows, map[string]string{"old": "new"})
	require.Len(t, out, 1)
	assert.Equal(t, Row{"new": "v", "keep": "k"}, out[0])
	// input untouched
	assert.Equal(t, Row{"old": "v", "keep": "k"}, rows[0])
}
