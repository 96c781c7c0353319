package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-config-keeper/internal/coordination"
	"github.com/MKhiriev/go-config-keeper/internal/logger"
)

// connection flags shared by every subcommand.
type connectionOptions struct {
	backend   string
	endpoints []string
	baseURL   string
	timeout   time.Duration
}

func (o *connectionOptions) client() (coordination.Client, error) {
	switch o.backend {
	case "", "etcd":
		return coordination.NewEtcdClient(coordination.EtcdConfig{
			Endpoints:      o.endpoints,
			RequestTimeout: o.timeout,
		})
	case "http":
		return coordination.NewHTTPClient(coordination.HTTPConfig{
			BaseURL: o.baseURL,
			Timeout: o.timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown coordination backend %q", o.backend)
	}
}

// NewRootCommand assembles the configctl command tree.
func NewRootCommand(version, commit, date string, log *logger.Logger) *cobra.Command {
	opts := &connectionOptions{}

	rootCmd := &cobra.Command{
		Use:   "configctl",
		Short: "configctl - operator CLI for the configuration coordination namespace",
		Long: `configctl reads, writes, deletes and watches keys in the distributed
key-value coordination service that backs go-config-keeper, and can run a
one-shot manifest resolution to preview the effective values a service
would see.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", "etcd", "coordination backend (etcd, http)")
	flags.StringSliceVar(&opts.endpoints, "endpoints", []string{"localhost:2379"}, "etcd endpoints")
	flags.StringVar(&opts.baseURL, "base-url", "", "HTTP KV API base URL")
	flags.DurationVar(&opts.timeout, "timeout", 5*time.Second, "request timeout")

	rootCmd.AddCommand(newGetCommand(opts))
	rootCmd.AddCommand(newPutCommand(opts))
	rootCmd.AddCommand(newDelCommand(opts))
	rootCmd.AddCommand(newWatchCommand(opts))
	rootCmd.AddCommand(newResolveCommand(opts, log))

	return rootCmd
}
