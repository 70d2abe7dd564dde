// Package cli wires Cobra commands to the connection service; it is a thin controller with no business logic.
package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neoclaw-ai/privatelink/internal/azure"
	"github.com/neoclaw-ai/privatelink/internal/config"
	"github.com/neoclaw-ai/privatelink/internal/connections"
	"github.com/neoclaw-ai/privatelink/internal/logging"
	"github.com/neoclaw-ai/privatelink/internal/output"
)

var clientFactory = newClient

func newClient(cfg config.AzureConfig) (connections.Client, error) {
	cred, err := azure.NewCredential(cfg)
	if err != nil {
		return nil, err
	}
	client, err := azure.NewPrivateLinkServicesClient(cfg, cred, nil)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type mode int

const (
	modeNone mode = iota
	modeSubscription
	modePending
	modeApprove
)

type rootOptions struct {
	subscription string
	pending      bool
	approve      string
	output       string
}

// selectMode returns the single requested mode and its argument. ok is false
// when no mode, more than one mode, or an empty argument was given.
func (o rootOptions) selectMode(cmd *cobra.Command) (m mode, arg string, ok bool) {
	flags := cmd.Flags()
	var selected []mode
	if flags.Changed("subscription") {
		selected = append(selected, modeSubscription)
	}
	if flags.Changed("pending") && o.pending {
		selected = append(selected, modePending)
	}
	if flags.Changed("approve") {
		selected = append(selected, modeApprove)
	}
	if len(selected) != 1 {
		return modeNone, "", false
	}

	switch selected[0] {
	case modeSubscription:
		arg = strings.TrimSpace(o.subscription)
	case modeApprove:
		arg = strings.TrimSpace(o.approve)
	case modePending:
		return modePending, "", true
	}
	if arg == "" {
		return modeNone, "", false
	}
	return selected[0], arg, true
}

// NewRootCmd creates the root command and registers all subcommands.
func NewRootCmd() *cobra.Command {
	var (
		verbose bool
		opts    rootOptions
	)

	root := &cobra.Command{
		Use:   "privatelink",
		Short: "Azure Private Link Connection Helper",
		// Positional arguments are ignored, as are unknown subcommand names.
		Args: cobra.ArbitraryArgs,
		// Let main handle fatal error rendering through structured logs.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				logging.SetLevel(slog.LevelInfo)
			} else {
				logging.SetLevel(slog.LevelWarn)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, arg, ok := opts.selectMode(cmd)
			if !ok {
				return printUsage(cmd.OutOrStdout())
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Azure.Configured() {
				logging.Logger().Info("azure credentials not configured", "missing", strings.Join(cfg.Azure.Missing(), ","))
				return printUsage(cmd.OutOrStdout())
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			formatName := cfg.Output.Format
			if cmd.Flags().Changed("output") {
				formatName = opts.output
			}
			format, err := output.ParseFormat(formatName)
			if err != nil {
				return err
			}

			client, err := clientFactory(cfg.Azure)
			if err != nil {
				return err
			}
			service := connections.NewService(client)

			switch m {
			case modeSubscription:
				return runList(cmd, service, connections.IsSubscription(arg), format)
			case modePending:
				return runList(cmd, service, connections.IsPending, format)
			case modeApprove:
				return runApprove(cmd, service, arg)
			}
			return printUsage(cmd.OutOrStdout())
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.Flags().StringVarP(&opts.subscription, "subscription", "s", "", "Show connections for the given subscription")
	root.Flags().BoolVarP(&opts.pending, "pending", "p", false, "List pending connections")
	root.Flags().StringVarP(&opts.approve, "approve", "a", "", "Approve the connection with the given ID")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "Output format: legacy, json or yaml")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (info level)")

	// Bad invocations fall back to usage with a zero exit code.
	root.SetFlagErrorFunc(func(cmd *cobra.Command, _ error) error {
		return printUsage(cmd.OutOrStdout())
	})
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != root {
			defaultHelp(cmd, args)
			return
		}
		_ = printUsage(cmd.OutOrStdout())
	})

	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}
