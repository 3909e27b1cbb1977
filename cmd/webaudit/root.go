package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webaudit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webaudit",
		Short: "Audit web pages for performance, SEO and accessibility",
		Long: `webaudit submits public web pages to an audit service and reports
four scores (performance, SEO, accessibility, best practices) together
with the issues found and how to fix them.

Run "webaudit analyze <url>" for a terminal report or "webaudit serve"
for the browser front end.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
