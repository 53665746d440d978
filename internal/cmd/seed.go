package cmd

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/guy32807/travel-recommentation/internal/domain"
	"github.com/guy32807/travel-recommentation/internal/seed"
	"github.com/guy32807/travel-recommentation/internal/service"
)

const (
	seedCmdUsage = "seed"
	seedCmdShort = "load the starter destination catalogue"
	seedCmdLong  = `Load a destination catalogue into the configured store.

	Without --file the built-in catalogue is used. Every entry goes through
	the same validation as POST /api/recommendations. A store that already
	holds destinations is left alone unless --force is given.`

	seedCmdExample = `# Seed the built-in destinations
	travelapi seed

	# Seed from a custom file even if the store is populated
	travelapi seed --file destinations.yaml --force`

	seedFileFlagName  = "file"
	seedForceFlagName = "force"
)

type seedFlags struct {
	file  string
	force bool
}

func (f *seedFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.file, seedFileFlagName, "f", "", "YAML catalogue to load instead of the built-in one")
	flags.BoolVar(&f.force, seedForceFlagName, false, "insert even when destinations already exist")
}

func seedCmd(root *rootFlags) *cobra.Command {
	flags := &seedFlags{}
	cmd := &cobra.Command{
		Use:     seedCmdUsage,
		Short:   heredoc.Doc(seedCmdShort),
		Long:    heredoc.Doc(seedCmdLong),
		Example: heredoc.Doc(seedCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Parse the catalogue first so a bad file fails without a database.
			dests, err := flags.catalogue()
			if err != nil {
				return handleError(cmd, err)
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

			n, err := seed.Apply(cmd.Context(), service.NewDestinationService(st.destinations), dests, flags.force)
			if err != nil {
				return handleError(cmd, err)
			}
			if n == 0 {
				log.Info("store already has destinations; nothing seeded", "force", flags.force)
				return nil
			}
			log.Info("destinations seeded", "count", n)
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

func (f *seedFlags) catalogue() ([]domain.Destination, error) {
	if f.file == "" {
		return seed.Default()
	}
	dests, err := seed.LoadFile(f.file)
	if err != nil {
		return nil, fmt.Errorf("cmd.seed: %w", err)
	}
	return dests, nil
}
