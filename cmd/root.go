package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dschat",
		Short:         "Chat with DeepSeek from the terminal",
		Long:          "dschat runs an interactive chat session against the DeepSeek chat completions API (or any OpenAI compatible endpoint), keeping the conversation in memory for the length of the session.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/dschat/config.toml)")
	rootCmd.PersistentFlags().StringVar(&app.envFile, "env-file", "", "Dotenv file to read (default .env)")

	addChatFlags(rootCmd)
	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runChat(cmd, app)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newConfigCmd(app),
		newAuthCmd(app),
	)

	return rootCmd
}
