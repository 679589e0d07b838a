package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"github.com/meghashyamc/ghreport/app"
	"github.com/meghashyamc/ghreport/config"
	"github.com/spf13/cobra"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		cancel()
		os.Exit(1)
	}
}

// Flag parsing is off so that qualifiers such as "-repo:owner/name" reach the
// search API untouched. Every argument is part of the query.
func newRootCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:                "ghreport <query>...",
		Short:              "Search GitHub code and print the matches as an HTML report",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), cfg, strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
}
