package main

import (
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	notesv1 "notes-backend/pkg/api/notes/v1"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Subscribe to note events (server-side streaming) until Ctrl+C",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, closeConn, err := dial()
		if err != nil {
			return err
		}
		defer closeConn()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		stream, err := client.SubscribeToEvents(ctx, &notesv1.SubscribeToEventsRequest{})
		if err != nil {
			return err
		}
		cmd.PrintErrln("Subscribed to note events, press Ctrl+C to stop")

		count := 0
		for {
			ev, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				cmd.PrintErrf("Stream closed by server after %d events\n", count)
				return nil
			}
			if status.Code(err) == codes.Canceled {
				cmd.PrintErrf("Stopped after %d events\n", count)
				return nil
			}
			if err != nil {
				return err
			}

			count++
			if asJSON {
				if err := printJSON(cmd.OutOrStdout(), ev); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %s %q\n",
				ev.At.Local().Format(time.TimeOnly), ev.Type, ev.Note.GetId(), ev.Note.GetTitle())
		}
	},
}
