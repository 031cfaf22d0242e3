package main

import (
	"github.com/spf13/cobra"
)

const (
	configFlagName  = "config"
	configFlagUsage = "Path to the configuration file (default: $SWEEPBOT_CONFIG, ./sweepbot.yaml, ~/.sweepbot/config.yaml)"
	envFlagName     = "env-file"
	envFlagUsage    = "Optional .env file holding the session secrets"
	defaultEnvFile  = ".env"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{envFile: defaultEnvFile}

	command := &cobra.Command{
		Use:           "sweepbot",
		Short:         "Automate sweepstake campaign entries",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	command.PersistentFlags().StringVar(&options.configPath, configFlagName, "", configFlagUsage)
	command.PersistentFlags().StringVar(&options.envFile, envFlagName, defaultEnvFile, envFlagUsage)

	command.AddCommand(
		newRunCommand(options),
		newClassifyCommand(options),
		newRulesCommand(options),
		newHistoryCommand(options),
	)
	return command
}
