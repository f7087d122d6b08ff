package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faceframebeauty/faceframe/contact"
	"github.com/faceframebeauty/faceframe/content"
	"github.com/faceframebeauty/faceframe/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	var noWatch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site API and images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if noWatch {
				a.cfg.Content.Watch = false
			}

			store, err := content.Open(a.cfg.Content.Dir, content.WithLogger(a.logger.Named("content")))
			if err != nil {
				return err
			}
			srv := server.New(server.Config{
				Addr:            a.cfg.Server.Addr,
				ReadTimeout:     a.cfg.Server.ReadTimeout,
				WriteTimeout:    a.cfg.Server.WriteTimeout,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
				AssetsDir:       a.cfg.Assets.Dir,
				Watch:           a.cfg.Content.Watch,
			}, store, a.mailer(), a.logger)
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload content on file changes")
	return cmd
}

// mailer returns the relay mailer when one is configured, else a mailer
// that only logs.
func (a *app) mailer() contact.Mailer {
	c := a.cfg.Contact
	if c.RelayURL == "" {
		a.logger.Warn("no contact relay configured, submissions will only be logged")
		return contact.LogMailer{Logger: a.logger.Named("contact")}
	}
	a.logger.Debug("contact relay", zap.String("url", c.RelayURL), zap.String("recipient", c.Recipient))
	return contact.NewRelayMailer(c.RelayURL, c.APIKey, c.Sender, c.Recipient, c.Timeout)
}
