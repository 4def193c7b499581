package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/symscan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show the effective configuration",
	Long: `Without arguments, prints every configuration key and its effective
value (defaults merged with .symscan/config.json). With a key argument,
prints just that value; an unknown key exits non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(projectRoot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return scanExit{2}
	}

	if len(args) == 1 {
		value, ok := cfg.Get(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown config key %q\n", args[0])
			return scanExit{1}
		}
		fmt.Println(value)
		return nil
	}

	for _, key := range config.Keys() {
		value, _ := cfg.Get(key)
		fmt.Printf("%-15s %s\n", key, value)
	}
	return nil
}
