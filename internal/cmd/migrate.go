package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/guy32807/travel-recommentation/internal/config"
	"github.com/guy32807/travel-recommentation/internal/repo"
	"github.com/guy32807/travel-recommentation/migrations"
)

const (
	migrateCmdUsage = "migrate [up|down|status]"
	migrateCmdShort = "apply, roll back or list schema migrations"
	migrateCmdLong  = `Apply, roll back or list schema migrations.

	With Postgres the embedded SQL migrations are run by goose: "up" applies
	every pending one, "down" rolls back the latest, "status" lists them all.
	With MongoDB "up" creates the destination indexes; there is no versioned
	schema to roll back or list. The default direction is "up".`

	migrateCmdExample = `# Apply pending migrations
	travelapi migrate

	# Roll back the most recent migration
	travelapi migrate down`
)

var migrateDirections = []string{"up", "down", "status"}

func migrateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     migrateCmdUsage,
		Short:   heredoc.Doc(migrateCmdShort),
		Long:    heredoc.Doc(migrateCmdLong),
		Example: heredoc.Doc(migrateCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:      cobra.MaximumNArgs(1),
		ValidArgs: migrateDirections,
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}
			if !slices.Contains(migrateDirections, direction) {
				return handleError(cmd, fmt.Errorf("%w: %s", errInvalidDirection, direction))
			}

			cfg, err := loadConfig(root.envFiles)
			if err != nil {
				return handleError(cmd, err)
			}
			log := newLogger(cmd.OutOrStdout(), cfg.LogLevel)

			st, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return handleError(cmd, err)
			}
			defer st.close()

			if err := runMigrations(cmd.Context(), st, direction, cmd.OutOrStdout(), log); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}
	return cmd
}

// runMigrations moves the schema of st in direction. status output goes to out.
func runMigrations(ctx context.Context, st *store, direction string, out io.Writer, log *slog.Logger) error {
	if st.kind == config.StoreMongo {
		return migrateMongo(ctx, st, direction, out, log)
	}

	db := stdlib.OpenDBFromPool(st.pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("cmd.runMigrations: create provider: %w", err)
	}

	switch direction {
	case "down":
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("cmd.runMigrations: down: %w", err)
		}
		log.Info("migration rolled back", "version", res.Source.Version, "path", res.Source.Path, "duration", res.Duration)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("cmd.runMigrations: status: %w", err)
		}
		printStatus(out, statuses)
	default:
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("cmd.runMigrations: up: %w", err)
		}
		for _, res := range results {
			log.Info("migration applied", "version", res.Source.Version, "path", res.Source.Path, "duration", res.Duration)
		}
		if len(results) == 0 {
			log.Info("schema is up to date")
		}
	}
	return nil
}

func migrateMongo(ctx context.Context, st *store, direction string, out io.Writer, log *slog.Logger) error {
	switch direction {
	case "down":
		return fmt.Errorf("cmd.migrateMongo: %w: mongodb has no versioned schema to roll back", errInvalidDirection)
	case "status":
		_, err := fmt.Fprintln(out, "mongodb: destination indexes are created by \"migrate up\"; there is no versioned schema")
		return err
	default:
		if err := repo.EnsureDestinationIndexes(ctx, st.mongoDB); err != nil {
			return fmt.Errorf("cmd.migrateMongo: %w", err)
		}
		log.Info("destination indexes ensured")
		return nil
	}
}

func printStatus(out io.Writer, statuses []*goose.MigrationStatus) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, s := range statuses {
		applied := "-"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
	}
	_ = tw.Flush()
}
