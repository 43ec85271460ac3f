// Command zine runs the zine backend and its maintenance tasks.
//
// Usage:
//
//	zine serve
//	zine migrate [up|down|status]
//	zine promote --email=user@example.com --role=admin
//	zine cleanup-tokens
//
// Configuration comes from config.yaml (CONFIG_PATH), an optional .env file
// (DOTENV_PATH) and the process environment.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/zine-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zine",
		Short:         "Zine community submission and edition backend",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newPromoteCmd(), newCleanupTokensCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or list database migrations",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{app.MigrateUp, app.MigrateDown, app.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := app.MigrateUp
			if len(args) == 1 {
				direction = args[0]
			}
			return app.Migrate(cmd.Context(), direction, cmd.OutOrStdout())
		},
	}
}

func newPromoteCmd() *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "promote",
		Short: "Change the role of an existing identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Promote(cmd.Context(), email, role, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email of the identity to promote")
	cmd.Flags().StringVar(&role, "role", "admin", "new role: contributor|moderator|admin")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newCleanupTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-tokens",
		Short: "Delete expired and revoked refresh sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.CleanupTokens(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
