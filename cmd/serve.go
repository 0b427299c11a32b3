package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propchat/propchat/applog"
	"github.com/propchat/propchat/config"
	"github.com/propchat/propchat/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Serves the chatbot over HTTP with one session per configured model.

Endpoints:
  POST /chat          ask a question
  POST /chat/reset    clear a model's history
  GET  /chat/history  fetch a model's history
  GET  /models        list configured models
  GET  /tenants       list configured tenants
  PUT  /tenant        switch the active tenant
  GET  /health        storage health and row counts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := server.New(cfg, st)
		fmt.Printf("propchat listening on %s\n", serveAddr)
		applog.Info("http server listening on %s", serveAddr)
		defer applog.Close()
		return srv.ListenAndServe(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
