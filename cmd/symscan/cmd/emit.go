package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/symscan/internal/app"
	"github.com/corey/symscan/internal/config"
	"github.com/corey/symscan/internal/ports"
)

var (
	emitSource  string
	emitOut     string
	emitVersion int
	emitVerbose bool
)

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Run the in-process scanning backend directly",
	Long: `Scans --source and writes the manifest to --out without any build
orchestration. This is the fallback backend exposed standalone, honoring the
same contract as the compiled scanner: exit 0 only when the manifest was
written, diagnostics on the process streams.`,
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().StringVar(&emitSource, "source", "", "path of the source file to scan")
	emitCmd.Flags().StringVar(&emitOut, "out", "", "manifest output path")
	emitCmd.Flags().IntVar(&emitVersion, "version", 0, "manifest schema version (default from config)")
	emitCmd.Flags().BoolVar(&emitVerbose, "verbose", false, "step-level diagnostics")
	emitCmd.MarkFlagRequired("source")
	emitCmd.MarkFlagRequired("out")
}

func runEmit(cmd *cobra.Command, args []string) error {
	lg := app.NewLog(emitVerbose)

	cfg, err := config.Load(projectRoot())
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{2}
	}
	version := emitVersion
	if version == 0 {
		version = cfg.SchemaVersion
	}

	backend := &app.FallbackBackend{Annotation: cfg.Annotation, Log: lg}
	spec := ports.RunSpec{Source: emitSource, Out: emitOut, Schema: version, Verbose: emitVerbose}
	if err := backend.Run(spec); err != nil {
		lg.Errorf("%v", err)
		return scanExit{1}
	}
	return nil
}
