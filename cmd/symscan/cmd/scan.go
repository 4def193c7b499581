package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/symscan/internal/adapters/bbolt"
	"github.com/corey/symscan/internal/adapters/cc"
	"github.com/corey/symscan/internal/app"
	"github.com/corey/symscan/internal/config"
	"github.com/corey/symscan/internal/ports"
	"github.com/corey/symscan/native"
)

var (
	scanOut     string
	scanSchema  int
	scanBackend string
	scanVerbose bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <source>",
	Short: "Scan a source file and write the export manifest",
	Long: `Detects the export-marker #define in the source, extracts every
marker-prefixed function declaration, and writes the schema-versioned JSON
manifest. The native backend is compiled on first use and reused while
fresh; without a C toolchain the in-process fallback runs instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "", "manifest output path (default from config)")
	scanCmd.Flags().IntVar(&scanSchema, "schema", 0, "manifest schema version (default from config)")
	scanCmd.Flags().StringVar(&scanBackend, "backend", "", "backend: auto, native, or fallback (default from config)")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "step-level diagnostics")
}

func runScan(cmd *cobra.Command, args []string) error {
	lg := app.NewLog(scanVerbose)

	cfg, err := config.Load(projectRoot())
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{2}
	}
	spec, mode, err := resolveRun(cfg, args[0], scanOut, scanSchema, scanBackend, scanVerbose)
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{2}
	}

	orch, done, err := newOrchestrator(projectRoot(), cfg, mode, lg)
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{1}
	}
	defer done()

	if _, err := orch.Run(spec); err != nil {
		lg.Errorf("%v", err)
		return scanExit{1}
	}
	return nil
}

// resolveRun merges flag overrides into the config-derived run arguments.
func resolveRun(cfg *config.Config, source, out string, schema int, backend string, verbose bool) (ports.RunSpec, app.Mode, error) {
	if out == "" {
		out = cfg.Output
	}
	if schema == 0 {
		schema = cfg.SchemaVersion
	}
	if backend == "" {
		backend = cfg.Backend
	}
	switch backend {
	case config.BackendAuto, config.BackendNative, config.BackendFallback:
	default:
		return ports.RunSpec{}, "", fmt.Errorf("unknown backend %q (want auto, native, or fallback)", backend)
	}
	spec := ports.RunSpec{Source: source, Out: out, Schema: schema, Verbose: verbose}
	return spec, app.Mode(backend), nil
}

// newOrchestrator wires the toolchain, build-state store, and embedded
// backend source for one run. The returned func releases the store handle.
func newOrchestrator(root string, cfg *config.Config, mode app.Mode, lg *app.Log) (*app.Orchestrator, func(), error) {
	paths := app.NewPaths(root)
	if err := paths.EnsureDirs(); err != nil {
		return nil, nil, err
	}

	var builds ports.BuildState
	done := func() {}
	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		// A locked or unreadable store only costs the rebuild-avoidance
		// optimization, never the scan.
		lg.Debugf("build-state store unavailable: %v", err)
	} else {
		builds = store
		done = func() { store.Close() }
	}

	orch := &app.Orchestrator{
		Toolchain:     cc.New(cfg.Compilers),
		Builds:        builds,
		Paths:         paths,
		Mode:          mode,
		Annotation:    cfg.Annotation,
		ScannerSource: native.ScannerSource,
		Log:           lg,
	}
	return orch, done, nil
}
