package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/deepseek-chat-cli/internal/config"
	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored API key",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app), newAuthShowCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var secretKey string
	var secretValue string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key in the secret store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value := strings.TrimSpace(secretValue)
			if value == "" {
				return errors.New("secret value is empty")
			}

			if err := app.secretStore.Put(cmd.Context(), secretKey, value); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Stored API key under %q\n", secretKey)
			return err
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", config.DefaultSecretKey, "Secret-store key")
	cmd.Flags().StringVar(&secretValue, "secret-value", "", "API key")
	_ = cmd.MarkFlagRequired("secret-value")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	var secretKey string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.secretStore.Delete(cmd.Context(), secretKey); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed API key %q\n", secretKey)
			return err
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", config.DefaultSecretKey, "Secret-store key")

	return cmd
}

func newAuthShowCmd(app *app) *cobra.Command {
	var secretKey string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored API key, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			value, err := app.secretStore.Get(cmd.Context(), secretKey)
			if errors.Is(err, ports.ErrSecretNotFound) {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "No API key stored under %q\n", secretKey)
				return err
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", secretKey, config.MaskSecret(value))
			return err
		},
	}

	cmd.Flags().StringVar(&secretKey, "secret-key", config.DefaultSecretKey, "Secret-store key")

	return cmd
}
