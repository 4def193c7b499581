package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/symscan/internal/adapters/dl"
	"github.com/corey/symscan/internal/app"
	"github.com/corey/symscan/internal/config"
	"github.com/corey/symscan/internal/domain/manifest"
)

var verifyManifestPath string

var verifyCmd = &cobra.Command{
	Use:   "verify <library>",
	Short: "Check a built shared library against the manifest",
	Long: `Loads the shared library and resolves every function named in the
manifest. The manifest claims exports; verify proves them against the real
binary. Exits non-zero when any symbol is missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyManifestPath, "manifest", "m", "", "manifest path (default from config)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	lg := app.NewLog(false)

	manifestPath := verifyManifestPath
	if manifestPath == "" {
		cfg, err := config.Load(projectRoot())
		if err != nil {
			lg.Errorf("%v", err)
			return scanExit{2}
		}
		manifestPath = cfg.Output
	}

	doc, err := manifest.Read(manifestPath)
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{1}
	}

	lib, err := dl.Open(args[0])
	if err != nil {
		lg.Errorf("%v", err)
		return scanExit{1}
	}
	defer lib.Close()

	var missing []string
	for _, entry := range doc.Exported {
		if !lib.Has(entry.Name) {
			missing = append(missing, entry.Name)
		}
	}

	if len(missing) == 0 {
		lg.Infof("All %d manifest symbols resolve in %s", len(doc.Exported), args[0])
		return nil
	}
	for _, name := range missing {
		lg.Errorf("symbol %s is in the manifest but not exported by %s", name, args[0])
	}
	return scanExit{1}
}
