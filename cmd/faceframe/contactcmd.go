package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faceframebeauty/faceframe"
	"github.com/faceframebeauty/faceframe/contact"
)

var (
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(faceframe.Palette.Gold.Hex()))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(faceframe.Palette.Blush.Hex())).Bold(true)
)

func newContactCmd(a *app) *cobra.Command {
	var sub contact.Submission
	var endpoint string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a contact form submission to a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if endpoint == "" {
				endpoint = "http://" + a.cfg.Server.Addr + "/api/contact"
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			id, err := contact.NewClient(endpoint).Submit(ctx, sub)
			msg := contact.UserMessage(err)
			if err != nil {
				a.logger.Debug("contact submit failed", zap.String("endpoint", endpoint), zap.Error(err))
				fmt.Fprintln(a.out, errStyle.Render(msg))
				return fmt.Errorf("submit: %w", err)
			}
			fmt.Fprintln(a.out, okStyle.Render(msg))
			fmt.Fprintf(a.out, "reference %s\n", id)
			return nil
		},
	}
	cmd.Flags().StringVar(&sub.Name, "name", "", "your name")
	cmd.Flags().StringVar(&sub.Email, "email", "", "reply address")
	cmd.Flags().StringVar(&sub.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&sub.Service, "service", "", "service of interest")
	cmd.Flags().StringVar(&sub.Message, "message", "", "message body")
	cmd.Flags().StringVar(&sub.PreferredDate, "date", "", "preferred date, YYYY-MM-DD")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "contact endpoint URL (defaults to the configured server)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}
