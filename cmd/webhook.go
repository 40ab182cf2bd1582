package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var webhookURL string

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Telegram webhook management",
}

var setWebhookCmd = &cobra.Command{
	Use:   "set",
	Short: "Register the webhook URL with Telegram",
	Long:  `Call setWebhook so Telegram delivers updates to this service. The configured webhook secret is registered as secret_token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		lg := initLogger(cfg)

		if err := cfg.Telegram.Validate(); err != nil {
			return fmt.Errorf("telegram config: %w", err)
		}

		target := webhookURL
		if target == "" {
			target = cfg.Telegram.WebhookURL
		}
		if target == "" {
			return fmt.Errorf("no webhook url: pass --url or set telegram.webhook_url")
		}

		client := newTelegramClient(cfg.Telegram, lg)
		defer client.Shutdown()

		if err := client.SetWebhook(cmd.Context(), target, cfg.Telegram.WebhookSecret); err != nil {
			return err
		}

		lg.Info("webhook registered", "url", target, "secret", cfg.Telegram.WebhookSecret != "")
		return nil
	},
}

func init() {
	setWebhookCmd.Flags().StringVar(&webhookURL, "url", "", "public URL of /telegram_webhook (defaults to telegram.webhook_url)")

	webhookCmd.AddCommand(setWebhookCmd)
	rootCmd.AddCommand(webhookCmd)
}
