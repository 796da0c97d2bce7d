package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/WolofBridge/internal/app"
	"github.com/Rorical/WolofBridge/internal/config"
	"github.com/Rorical/WolofBridge/internal/console"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask one question and print the answer",
	Long: `Send a single question to the active profile's backend and print the four
response fields. Exits with a non-zero status when the query fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Current().Validate(); err != nil {
			return err
		}

		zl, err := newLogger()
		if err != nil {
			return err
		}
		defer zl.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		out := console.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), strings.Join(args, " "), askJSON)
		controller := app.NewController(cfg, zl)

		// the console already printed the message
		if err := controller.Trigger(ctx, out.Bindings()); err != nil {
			cmd.SilenceErrors = true
			return err
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the response as JSON")
	rootCmd.AddCommand(askCmd)
}
