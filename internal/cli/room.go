package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room management commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomStateCmd())
	cmd.AddCommand(newRoomWatchCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var maxPlayers int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new room",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.CreateRoom(maxPlayers)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "Room size, 2 to 4 (default: server default)")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get the current room state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.GetRoom(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room by code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.JoinRoom(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomStartCmd() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "start <code>",
		Short: "Start the match (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var initial json.RawMessage
			if state != "" {
				if !json.Valid([]byte(state)) {
					return fmt.Errorf("--state must be valid JSON")
				}
				initial = json.RawMessage(state)
			}

			result, err := client.StartRoom(args[0], initial)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Initial state as a JSON document")

	return cmd
}

func newRoomStateCmd() *cobra.Command {
	var state, winner string

	cmd := &cobra.Command{
		Use:   "state <code>",
		Short: "Push a new state document to the room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(state)) {
				return fmt.Errorf("--state must be valid JSON")
			}

			result, err := client.UpdateRoomState(args[0], json.RawMessage(state), winner)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "State as a JSON document (required)")
	cmd.Flags().StringVar(&winner, "winner", "", "User ID of the winner, ends the match")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}

func newRoomWatchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <code>",
		Short: "Poll a room and print every state change",
		Long: `Poll the room endpoint and print the room each time its revision moves.

Polling also marks you as connected in the room's player list.

Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(args[0], interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Poll interval")

	return cmd
}

func watchRoom(code string, interval time.Duration) error {
	out := NewOutput(cfg.Output)

	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	lastRevision := -1
	poll := func() error {
		result, err := client.GetRoom(code)
		if err != nil {
			return err
		}
		if result.Revision != lastRevision {
			lastRevision = result.Revision
			out.Print(result)
		}
		return nil
	}

	// First poll up front so errors like a bad code surface immediately
	if err := poll(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped")
			return nil
		case <-ticker.C:
			if err := poll(); err != nil {
				out.PrintError(err)
			}
		}
	}
}
