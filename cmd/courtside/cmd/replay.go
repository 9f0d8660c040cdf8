package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/telemetry"
)

var replayCmd = &cobra.Command{
	Use:   "replay-server <dataset>",
	Short: "Serve a recorded game as a websocket feed",
	Long: `Replay-server streams a recorded game to every websocket client that
connects on /feed, one message per interval. Point 'courtside live' at it
to exercise a paper session end to end.

Example:
  courtside replay-server data/game_0042.json --addr :8080 --interval 250ms`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replayAddr     string
	replayInterval time.Duration
	replayFormat   string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayAddr, "addr", "a", ":8080", "listen address")
	replayCmd.Flags().DurationVarP(&replayInterval, "interval", "i", 100*time.Millisecond, "delay between messages")
	replayCmd.Flags().StringVarP(&replayFormat, "format", "f", "", "dataset format: json or csv (default by extension)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	items, err := loadItems(args[0], replayFormat)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	log := telemetry.L()
	mux := http.NewServeMux()
	mux.Handle("/feed", &feed.ReplayServer{
		Messages: feed.Messages(items),
		Interval: replayInterval,
		Log:      log,
	})
	srv := &http.Server{Addr: replayAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			telemetry.Warnf("replay server shutdown: %v", err)
		}
	}()

	log.Info("replay server listening", "addr", replayAddr, "events", len(items))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
