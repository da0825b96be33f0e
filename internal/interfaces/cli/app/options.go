// Package app wires configuration, storage and use cases for the CLI
// commands.
package app

import (
	"github.com/spf13/cobra"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath  string
	Output      string
	SessionFile string
}

func (o *Options) BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&o.Output, "output", "o", FormatText, "Output format (text, json, yaml)")
	cmd.PersistentFlags().StringVar(&o.SessionFile, "session-file", "", "Where the login session is kept (default: user config dir)")
}
