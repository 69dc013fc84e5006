package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAsk(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := AskCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestAskKnowledge(t *testing.T) {
	out := runAsk(t, "explain b+ tree")

	assert.Contains(t, out, "intent: knowledge")
	assert.Contains(t, out, "B+ trees explained")
}

func TestAskTaskWithoutGoal(t *testing.T) {
	out := runAsk(t, "what should I do today")

	assert.Contains(t, out, "intent: task_recommendation")
	assert.Contains(t, out, "You haven't set a learning goal yet")
}

func TestAskWithGoalFileIsReproducible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	goal := `{"goal": {"objective": "Master binary search trees", "key_results": [
		{"text": "Implement a BST", "priority": "high"},
		{"text": "Read about B+ trees", "priority": "low"}
	]}}`
	require.NoError(t, os.WriteFile(path, []byte(goal), 0o600))

	first := runAsk(t, "what should I do today", "--goal-file", path, "--seed", "42")
	second := runAsk(t, "what should I do today", "--goal-file", path, "--seed", "42")

	assert.Equal(t, first, second)
	assert.Contains(t, first, "tasks: 2")
	assert.Contains(t, first, "Implement a BST")
	assert.Contains(t, first, "3-4h")
	assert.Contains(t, first, "1-2h")
}

func TestReadGoal(t *testing.T) {
	goal, err := readGoal("")
	require.NoError(t, err)
	assert.Nil(t, goal)

	path := filepath.Join(t.TempDir(), "goal.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"objective": "Learn Go concurrency", "key_results": []}`), 0o600))
	goal, err = readGoal(path)
	require.NoError(t, err)
	assert.Equal(t, "Learn Go concurrency", goal.Objective)

	require.NoError(t, os.WriteFile(path, []byte(`{"key_results": []}`), 0o600))
	_, err = readGoal(path)
	assert.Error(t, err)
}
