package main

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/arkas/internal/certs"
	"github.com/Veraticus/arkas/internal/config"
	"github.com/Veraticus/arkas/internal/model"
	"github.com/Veraticus/arkas/internal/web"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web interface",
		Long: `Serve the salary simulator, the worksheet form and the admin panel over HTTP.

The admin panel is enabled only when worksheet.admin_password is set.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	adminPassword := config.AdminPassword(viper.GetViper())
	if adminPassword == "" {
		slog.Warn("admin panel disabled, set worksheet.admin_password to enable it")
	}

	srv, err := web.NewServer(web.Options{
		Store:         store,
		Generator:     newGenerator(false),
		Logger:        slog.Default(),
		AdminPassword: adminPassword,
		Categories:    model.DefaultCategories(),
	})
	if err != nil {
		return err
	}

	var tlsConfig *tls.Config
	if useTLS, _ := cmd.Flags().GetBool("tls"); useTLS {
		certDir := filepath.Join(config.ConfigDir(), "certs")
		tlsConfig, err = certs.NewFileManager(certDir).TLSConfig()
		if err != nil {
			return fmt.Errorf("failed to prepare TLS certificate: %w", err)
		}
		slog.Info("using self-signed certificate", "dir", certDir)
	}

	return srv.ListenAndServe(ctx, viper.GetString("server.addr"), tlsConfig)
}
