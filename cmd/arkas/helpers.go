package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/arkas/internal/cli"
	"github.com/Veraticus/arkas/internal/common"
	"github.com/Veraticus/arkas/internal/config"
	"github.com/Veraticus/arkas/internal/llm"
	"github.com/Veraticus/arkas/internal/narrative"
	"github.com/Veraticus/arkas/internal/service"
	"github.com/Veraticus/arkas/internal/storage"
)

// initStore opens the configured worksheet store.
func initStore(ctx context.Context) (service.SubmissionStore, error) {
	cfg := config.LoadStorageConfig(viper.GetViper())
	common.LogDebug("opening worksheet store", common.Fields{"backend": cfg.Backend, "path": cfg.Path})

	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open worksheet store: %w", err)
	}
	return store, nil
}

// newGenerator returns a narrative generator. Without a usable API key the
// generator still works and always answers from the local templates.
func newGenerator(disabled bool) *narrative.Generator {
	logger := slog.Default()
	if disabled || !config.LLMEnabled(viper.GetViper()) {
		return narrative.NewGenerator(nil, logger)
	}

	cfg, err := config.LoadLLMConfig(viper.GetViper())
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Warn("no API key configured, using local explanations")
		} else {
			logger.Warn("invalid LLM configuration, using local explanations", "error", err)
		}
		return narrative.NewGenerator(nil, logger)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		logger.Warn("failed to create LLM client, using local explanations", "error", err)
		return narrative.NewGenerator(nil, logger)
	}

	logger.Debug("LLM client ready", "provider", cfg.Provider, "model", cfg.Model)
	return narrative.NewGenerator(client, logger)
}

// checkAdmin verifies the admin password, asking for it when the flag is
// empty.
func checkAdmin(cmd *cobra.Command) error {
	configured := config.AdminPassword(viper.GetViper())
	if configured == "" {
		return common.NewUserError("admin access is disabled; set worksheet.admin_password", common.ErrUnauthorized)
	}

	given, _ := cmd.Flags().GetString("password")
	if given == "" {
		if err := cli.NewPasswordForm(&given).RunWithContext(cmd.Context()); err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	if !config.CheckAdminPassword(configured, given) {
		return common.NewUserError("wrong admin password", common.ErrUnauthorized)
	}
	return nil
}
