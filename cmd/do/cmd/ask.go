package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/templui/studyokr/internal/app"
	"github.com/templui/studyokr/internal/assistant"
	"github.com/templui/studyokr/internal/model"
)

// AskCmd runs the assistant without a server or database.
func AskCmd() *cobra.Command {
	var (
		seed        uint64
		goalFile    string
		contentPath string
	)

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the study assistant a question offline",
		Example: `  do ask "what should I do today" --goal-file goal.json --seed 42
  do ask "explain b+ tree"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, err := readGoal(goalFile)
			if err != nil {
				return err
			}

			kb, err := app.LoadKnowledge(contentPath)
			if err != nil {
				return fmt.Errorf("failed to load knowledge base: %w", err)
			}

			var r assistant.Rand
			if cmd.Flags().Changed("seed") {
				r = rand.New(rand.NewPCG(seed, seed))
			}

			reply := assistant.NewResponder(kb, r).Respond(strings.Join(args, " "), goal)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "intent: %s\n", reply.Intent)
			if reply.Metadata.Category != "" {
				fmt.Fprintf(out, "category: %s, difficulty: %s\n", reply.Metadata.Category, reply.Metadata.Difficulty)
			}
			if reply.Metadata.TaskCount > 0 {
				fmt.Fprintf(out, "tasks: %d\n", reply.Metadata.TaskCount)
			}
			fmt.Fprintf(out, "\n%s\n", reply.Text)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the random choices for a reproducible reply")
	cmd.Flags().StringVar(&goalFile, "goal-file", "", "JSON learning goal, as found in the \"goal\" field of a data export")
	cmd.Flags().StringVar(&contentPath, "content", "", "directory holding a knowledge/ folder (default: embedded articles)")

	return cmd
}

// readGoal accepts a bare goal or a full export document.
func readGoal(path string) (*model.LearningGoal, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read goal file: %w", err)
	}

	var export struct {
		Goal *model.LearningGoal `json:"goal"`
	}
	err = json.Unmarshal(data, &export)
	if err == nil && export.Goal != nil {
		return export.Goal, nil
	}

	goal := &model.LearningGoal{}
	err = json.Unmarshal(data, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to parse goal file: %w", err)
	}
	if goal.Objective == "" {
		return nil, errors.New("goal file has no objective")
	}
	return goal, nil
}
