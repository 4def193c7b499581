package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/symscan/internal/adapters/fsnotify"
	"github.com/corey/symscan/internal/app"
	"github.com/corey/symscan/internal/config"
)

var (
	watchOut     string
	watchSchema  int
	watchBackend string
	watchVerbose bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <source>",
	Short: "Re-scan the source whenever it changes",
	Long: `Performs an initial scan, then watches the source file and re-runs the
full orchestrated scan after each save. Runs until interrupted. A failing
re-scan is reported and watching continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "manifest output path (default from config)")
	watchCmd.Flags().IntVar(&watchSchema, "schema", 0, "manifest schema version (default from config)")
	watchCmd.Flags().StringVar(&watchBackend, "backend", "", "backend: auto, native, or fallback (default from config)")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "step-level diagnostics")
}

func runWatch(cmd *cobra.Command, args []string) error {
	lg := app.NewLog(watchVerbose)
	root := projectRoot()

	cfg, err := config.Load(root)
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{2}
	}
	spec, mode, err := resolveRun(cfg, args[0], watchOut, watchSchema, watchBackend, watchVerbose)
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{2}
	}

	rescan := func() {
		orch, done, err := newOrchestrator(root, cfg, mode, lg)
		if err != nil {
			lg.Errorf("%v", err)
			return
		}
		defer done()
		if _, err := orch.Run(spec); err != nil {
			lg.Errorf("%v", err)
		}
	}

	rescan()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		lg.Errorf("start watcher: %v", err)
		return scanExit{1}
	}
	defer w.Stop()

	if err := w.Watch(spec.Source, func() {
		lg.Infof("%s changed, re-scanning", spec.Source)
		rescan()
	}); err != nil {
		lg.Errorf("watch %s: %v", spec.Source, err)
		return scanExit{1}
	}

	lg.Infof("Watching %s (ctrl-c to stop)", spec.Source)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
