package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/symscan/internal/adapters/bbolt"
	"github.com/corey/symscan/internal/app"
	"github.com/corey/symscan/internal/ports"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the built scanner and recorded build state",
	Long: `Removes the compiled native scanner, its materialized source, and the
recorded build outcomes under .symscan/. The next scan rebuilds from
scratch — use this when a stale artifact or a recorded build failure is
getting in the way.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	paths := app.NewPaths(projectRoot())

	var builds ports.BuildState
	if _, err := os.Stat(paths.DB); err == nil {
		store, err := bbolt.NewStore(paths.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: open build state: %v\n", err)
			return scanExit{1}
		}
		defer store.Close()
		builds = store
	}

	if err := app.Reset(paths, builds); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return scanExit{1}
	}
	fmt.Println("Native scanner and build state cleared.")
	return nil
}
