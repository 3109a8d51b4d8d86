package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-edu/codelab_api/shared"
)

func TestNormalizeOutput(t *testing.T) {
	assert.Equal(t, "8", NormalizeOutput("8\n"))
	assert.Equal(t, "8", NormalizeOutput("8\r\n"))
	assert.Equal(t, "8", NormalizeOutput("8 \t\n"))
	assert.Equal(t, "Line 1\nLine 2", NormalizeOutput("Line 1\r\nLine 2\r\n"))
	assert.Equal(t, "a\n\nb", NormalizeOutput("a\n\nb\n"), "interior blank lines survive")
	assert.Equal(t, "  indented", NormalizeOutput("  indented\n"), "leading whitespace survives")
	assert.Equal(t, "", NormalizeOutput("\n\n"))
}

func TestMapLanguageID(t *testing.T) {
	for _, lang := range []string{"C++", "c++", "cpp", "CPP", "cxx"} {
		id, err := mapLanguageID(lang)
		require.NoError(t, err, lang)
		assert.Equal(t, judge0LanguageCpp, id)
	}

	for _, lang := range []string{"Python", "python", "py", "PY"} {
		id, err := mapLanguageID(lang)
		require.NoError(t, err, lang)
		assert.Equal(t, judge0LanguagePython, id)
	}
}

func TestMapLanguageID_HTMLRejected(t *testing.T) {
	_, err := mapLanguageID("HTML")

	require.Error(t, err)
	appErr, ok := err.(*shared.AppError)
	require.True(t, ok)
	assert.Equal(t, "HTML is previewed client-side, not executed", appErr.Message)
}

func TestMapLanguageID_Unknown(t *testing.T) {
	_, err := mapLanguageID("Rust")

	require.Error(t, err)
	appErr, ok := err.(*shared.AppError)
	require.True(t, ok)
	assert.Equal(t, "Unsupported language: Rust. Use C++ or Python.", appErr.Message)
}

func TestBuildRunResponse_Accepted(t *testing.T) {
	result := &judge0Result{Stdout: "8\n"}
	result.Status.ID = judge0StatusAccepted

	run := buildRunResponse(result)

	assert.True(t, run.Accepted)
	assert.Equal(t, "8", run.Output)
	assert.Equal(t, "8\n", run.Stdout)
}

func TestBuildRunResponse_StderrAppended(t *testing.T) {
	result := &judge0Result{Stdout: "partial\n", Stderr: "warning: something\n"}
	result.Status.ID = judge0StatusAccepted

	run := buildRunResponse(result)

	assert.Equal(t, "partial\n\nwarning: something", run.Output)
}

func TestBuildRunResponse_CompileError(t *testing.T) {
	result := &judge0Result{CompileOutput: "main.cpp:4: error: expected ';'"}
	result.Status.ID = 6 // compilation error

	run := buildRunResponse(result)

	assert.False(t, run.Accepted)
	assert.Equal(t, "main.cpp:4: error: expected ';'", run.Output)
	assert.Equal(t, 6, run.StatusID)
}

func TestBuildRunResponse_NoOutputAtAll(t *testing.T) {
	result := &judge0Result{}
	result.Status.ID = 13

	run := buildRunResponse(result)

	assert.False(t, run.Accepted)
	assert.Equal(t, "Execution failed.", run.Output)
}

func TestChallengeCatalog_Integrity(t *testing.T) {
	require.Len(t, challengeOrder, len(challengeCatalog))

	for _, id := range challengeOrder {
		ch, ok := challengeCatalog[id]
		require.Truef(t, ok, "ordered challenge %s missing from catalog", id)

		assert.Equal(t, id, ch.ID)
		assert.NotEmpty(t, ch.Title)
		assert.NotEmpty(t, ch.Description)
		assert.NotEmpty(t, ch.StarterCode)
		assert.NotEmpty(t, ch.ExpectedOutput)
		assert.Contains(t, []string{"Python", "C++"}, ch.Language)
		assert.Contains(t, []string{"Beginner", "Intermediate"}, ch.Difficulty)

		_, err := mapLanguageID(ch.Language)
		assert.NoErrorf(t, err, "challenge %s language must be runnable", id)
	}
}

func TestMapChallenge(t *testing.T) {
	out := mapChallenge(challengeCatalog["py-sum"], true)

	assert.Equal(t, "py-sum", out.ID)
	assert.Equal(t, "3 5\n", out.Input)
	assert.True(t, out.Completed)
}
