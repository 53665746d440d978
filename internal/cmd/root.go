// Package cmd builds the travelapi command tree: serve, migrate and seed.
package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	appName = "travelapi"

	rootShort = "travelapi serves travel recommendations and provider proxies"
	rootLong  = `travelapi runs the travel recommendation API.

	Configuration is read from environment variables. Unless --env-file is
	given, a .env file in the working directory or its parent is loaded first;
	variables that are already set are never overridden.`

	envFileFlagName = "env-file"
	envFileUsage    = "dotenv file to load before reading the environment (repeatable)"
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	envFiles []string
}

func (f *rootFlags) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringSliceVar(&f.envFiles, envFileFlagName, nil, envFileUsage)
}

// RootCmd constructs the root command with every subcommand attached.
func RootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(rootShort),
		Long:  heredoc.Doc(rootLong),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flags.addFlags(cmd)
	cmd.AddCommand(
		serveCmd(flags),
		migrateCmd(flags),
		seedCmd(flags),
	)
	return cmd
}
