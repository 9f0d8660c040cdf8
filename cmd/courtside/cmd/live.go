package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/live"
	"github.com/rustyeddy/courtside/strategy"
	"github.com/rustyeddy/courtside/telemetry"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run a paper session against a websocket feed",
	Long: `Live connects to a websocket stream of game_event, orderbook, trade and
account messages and drives the engine from it. Orders are logged by a
paper sink; nothing is sent to a venue.

Example:
  courtside live --url ws://localhost:8080/feed
  COURTSIDE_FEED_URL=ws://localhost:8080/feed courtside live`,
	Args: cobra.NoArgs,
	RunE: runLive,
}

var liveURL string

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().StringVarP(&liveURL, "url", "u", "", "websocket feed URL (overrides live.url)")
}

func runLive(cmd *cobra.Command, args []string) error {
	url := cfg.Live.URL
	if liveURL != "" {
		url = liveURL
	}
	if url == "" {
		return errors.New("no feed url: pass --url or set live.url")
	}
	readTimeout, err := cfg.Live.ReadTimeoutDuration()
	if err != nil {
		return err
	}
	status, err := cfg.Live.StatusIntervalDuration()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := telemetry.L()
	ws, err := feed.DialWS(ctx, url, nil, log)
	if err != nil {
		return fmt.Errorf("dial feed: %w", err)
	}
	ws.SetReadTimeout(readTimeout)

	sink := broker.NewPaperSink(log)
	s := &live.Session{
		Engine:         strategy.NewEngine(cfg.Params(), sink, strategy.WithObserver(telemetry.NewLogObserver(log))),
		Source:         ws,
		StatusInterval: status,
		Log:            log,
	}

	log.Info("live session connected", "url", url)
	if err := s.Run(ctx); err != nil {
		telemetry.Errorf("live session failed after %d events: %v", s.Events(), err)
		return fmt.Errorf("live: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Events: %d  Orders: %d  Position: %d\n",
		s.Events(), len(sink.Orders()), s.Engine.Position())
	return nil
}
