package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func GenCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Regenerate templ components whose sources changed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd.OutOrStdout(), "internal", force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "regenerate even when every component is up to date")

	return cmd
}

func runGen(out io.Writer, root string, force bool) error {
	stale := staleTemplFiles(root)
	if len(stale) == 0 && !force {
		fmt.Fprintln(out, "[templ] skipped")
		return nil
	}
	for _, file := range stale {
		fmt.Fprintf(out, "[templ] %s changed\n", file)
	}

	start := time.Now()
	gen := exec.Command("go", "tool", "templ", "generate", "-path", root)
	gen.Stdout = out
	gen.Stderr = os.Stderr
	if err := gen.Run(); err != nil {
		return fmt.Errorf("templ generate: %w", err)
	}

	fmt.Fprintf(out, "[templ] done (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// staleTemplFiles lists .templ files whose _templ.go is missing or older.
func staleTemplFiles(root string) []string {
	var stale []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".templ") {
			return nil
		}
		generated := strings.TrimSuffix(path, ".templ") + "_templ.go"
		if Stale(generated, []string{path}, ".templ") {
			stale = append(stale, path)
		}
		return nil
	})
	return stale
}
