package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// newRootCommand builds the command line surface. The server takes the bind
// address and port as positional arguments; the configuration file is
// optional and everything in it has a default.
func newRootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "skyirc <bind-address> <port>",
		Short:         "skyirc is an RFC 1459 IRC server",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(configFile) > 0 {
				configPath, err := filepath.Abs(configFile)
				if err != nil {
					return err
				}
				configFile = configPath
			}

			server, err := newServer(args[0], args[1], configFile)
			if err != nil {
				return err
			}

			return server.start()
		},
	}

	cmd.Flags().StringVar(&configFile, "conf", "", "Configuration file.")

	return cmd
}
