package cmd

import (
	"net/http"

	"github.com/jsphweid/midistrip/server"
	"github.com/jsphweid/midistrip/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveBind string

func init() {
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [FILE]",
	Short: "Serves an editing session over HTTP",
	Long:  `Serves one editing session over HTTP, optionally opening FILE first.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := session.New(
			session.WithLogger(logger),
			session.WithKeepAbsoluteTime(cfg.Strip.KeepAbsoluteTime),
		)
		if len(args) == 1 && !sess.Read(args[0]) {
			logger.Warn("could not open file", zap.String("status", sess.Status()))
		}

		srv := server.New(sess, server.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Autosave:       cfg.Server.Autosave,
			AutosaveDelay:  cfg.AutosaveDelay(),
			Logger:         logger,
		})

		bind := cfg.Server.Bind
		if serveBind != "" {
			bind = serveBind
		}
		logger.Info("listening", zap.String("bind", bind), zap.String("session", sess.ID.String()))
		return http.ListenAndServe(bind, srv.Handler())
	},
}
