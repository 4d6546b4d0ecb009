package main

import (
	"github.com/spf13/cobra"

	"github.com/imamrpratama/folio"
)

var (
	serveAddr    string
	serveContent string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Seed the content store if needed and serve the portfolio until interrupted.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides FOLIO_ADDR)")
	serveCmd.Flags().StringVar(&serveContent, "content", "", "YAML content file (overrides FOLIO_CONTENT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := folio.ConfigFromEnv()
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveContent != "" {
		cfg.ContentPath = serveContent
	}
	cfg.SessionSecret = folio.MustEnv("FOLIO_SESSION_SECRET")

	return folio.New(cfg).Start()
}
