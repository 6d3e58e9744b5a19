package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	var opts runOptions

	rootCmd := &cobra.Command{
		Use:   "netviability [project-path]",
		Short: "Assess the viability of universal 4G/5G mobile broadband",
		Long: "Estimates demand, the sites required to meet it, their cost, and the " +
			"state subsidy needed where revenue falls short, for every country and " +
			"decision option in the project configuration.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModel(cmd.Context(), projectArg(args), opts)
		},
	}
	opts.bind(rootCmd)

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(serveCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func projectArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func runCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run [project-path]",
		Short: "Run the model and write every result table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModel(cmd.Context(), projectArg(args), opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Check the configuration and parameter dictionaries without running the model",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(projectArg(args))
		},
	}
}

func summaryCmd() *cobra.Command {
	var country, decision string

	cmd := &cobra.Command{
		Use:   "summary [project-path]",
		Short: "Run one country and decision option and print national totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), projectArg(args), country, decision)
		},
	}

	cmd.Flags().StringVarP(&country, "country", "c", "", "ISO3 country code (required)")
	cmd.Flags().StringVarP(&decision, "decision-option", "d", "technology_options", "decision option to run")
	cmd.MarkFlagRequired("country")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local results browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), projectArg(args), port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
