package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"APIDirectory/internal/client"
	"APIDirectory/internal/config"
	"APIDirectory/pkg/kit"
)

var rootCmd = &cobra.Command{
	Use:           "apidir",
	Short:         "Browse the free API catalog",
	Long:          "apidir loads the API catalog from a catalog server and narrows it by category and free-text search.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .apidir.yaml)")
	rootCmd.PersistentFlags().String("server", "", "catalog server base URL (default http://localhost:3001)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "catalog request timeout")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log catalog requests to stderr (list and categories)")

	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("client_timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(listCmd, categoriesCmd, browseCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// session bundles what every subcommand needs.
type session struct {
	cfg    config.Config
	client *client.Client
	log    *zap.Logger
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log = kit.NewLogger("apidir", true)
	}

	c := client.New(cfg.ServerURL, cfg.ClientTimeout)
	c.Log = log

	return &session{
		cfg:    cfg,
		client: c,
		log:    log,
	}, nil
}

func serverHint(baseURL string) string {
	return fmt.Sprintf("Make sure the catalog server is running at %s", baseURL)
}
