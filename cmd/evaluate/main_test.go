package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCommand_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7"), 0600))

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{path, "--delay", "0s", "--output", "json"})
	require.NoError(t, rootCmd.Execute())

	var eval model.DesignEvaluation
	require.NoError(t, json.Unmarshal(out.Bytes(), &eval))
	assert.Equal(t, "plans.pdf", eval.FileName)
	assert.Equal(t, model.StatusCompleted, eval.Status)
	assert.NotEmpty(t, eval.Criteria)
	assert.Contains(t, errOut.String(), "Evaluation complete")
}

func TestEvaluateCommand_RejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.txt")
	require.NoError(t, os.WriteFile(path, []byte("text"), 0600))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{path, "--delay", "0s"})
	assert.Error(t, rootCmd.Execute())
}
