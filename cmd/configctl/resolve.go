package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-config-keeper/internal/config"
	"github.com/MKhiriev/go-config-keeper/internal/environ"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/resolver"
	"github.com/MKhiriev/go-config-keeper/models"
)

// newResolveCommand runs a one-shot manifest resolution against the live
// coordination service and prints the effective values. Resolution happens
// into an in-memory sink: previewing never mutates the operator's own
// process environment or the remote namespace (no key generation, no
// watches).
func newResolveCommand(opts *connectionOptions, log *logger.Logger) *cobra.Command {
	var manifestPath string
	var directoryName string
	var environment string
	var useEnvSubdirs bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Preview the effective values a service would resolve from a manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := config.LoadManifest(manifestPath)
			if err != nil {
				return err
			}

			client, err := opts.client()
			if err != nil {
				return err
			}
			defer client.Close()

			res := resolver.New(client, environ.NewMap(), log)
			driver := models.DriverConfig{
				DirectoryName:         directoryName,
				Environment:           environment,
				UseEnvironmentSubdirs: useEnvSubdirs,
			}
			if err := res.Initialize(cmd.Context(), manifest, driver); err != nil {
				return err
			}

			resolved := res.Store().Snapshot()

			for _, name := range manifest.Names() {
				value, ok := resolved[name]
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", keyStyle.Render(name), absentStyle.Render("(unresolved)"))
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", keyStyle.Render(name), valueStyle.Render(value))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "JSON parameter manifest path")
	cmd.Flags().StringVar(&directoryName, "directory", "", "service directory name")
	cmd.Flags().StringVar(&environment, "environment", "", "runtime environment name")
	cmd.Flags().BoolVar(&useEnvSubdirs, "env-subdirs", false, "derive keys under the environment subdirectory")
	cmd.MarkFlagRequired("manifest")
	cmd.MarkFlagRequired("directory")

	return cmd
}
