// symscan inspects native source code for functions marked for external
// linkage and produces a versioned JSON manifest describing each exported
// symbol. A native scanning backend is built on demand; an in-process
// fallback guarantees progress when no C toolchain is available.
package main

import (
	"fmt"
	"os"

	"github.com/corey/symscan/cmd/symscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ScanExitCode(err); code >= 0 {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
