package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-config-keeper/internal/coordination"
)

var (
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	absentStyle = lipgloss.NewStyle().Faint(true)
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func newGetCommand(opts *connectionOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value stored at KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			defer client.Close()

			value, found, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), absentStyle.Render("(not set)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), valueStyle.Render(value))
			return nil
		},
	}
}

func newPutCommand(opts *connectionOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "put KEY VALUE",
		Short: "Upsert VALUE at KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Put(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", keyStyle.Render(args[0]), valueStyle.Render(args[1]))
			return nil
		},
	}
}

func newDelCommand(opts *connectionOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "del KEY",
		Short: "Delete KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), deleteStyle.Render("deleted "+args[0]))
			return nil
		},
	}
}

func newWatchCommand(opts *connectionOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch KEY",
		Short: "Stream change notifications for KEY until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			events, err := client.Watch(ctx, args[0])
			if err != nil {
				return err
			}

			for ev := range events {
				switch ev.Kind {
				case coordination.EventDelete:
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", deleteStyle.Render("DEL"), keyStyle.Render(ev.Key))
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", valueStyle.Render("PUT"), keyStyle.Render(ev.Key), valueStyle.Render(ev.Value))
				}
			}

			return nil
		},
	}
}
