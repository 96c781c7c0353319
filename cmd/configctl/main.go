// configctl is a small operator CLI for the coordination namespace: it
// reads, writes, deletes and watches keys, and can run a one-shot manifest
// resolution to preview the effective values a service would see.
package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.Nop()

	rootCmd := NewRootCommand(buildVersion, buildCommit, buildDate, log)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
