package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	notesv1 "notes-backend/pkg/api/notes/v1"
)

const defaultAddress = "localhost:50051"

var (
	address string
	timeout time.Duration
	asJSON  bool
)

var rootCmd = &cobra.Command{
	Use:           "notes-client",
	Short:         "Command line client for the notes.v1.NotesService gRPC API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Адрес сервера из переменной окружения или значение по умолчанию
	defaultAddr := os.Getenv("SERVER_ADDRESS")
	if defaultAddr == "" {
		defaultAddr = defaultAddress
	}

	rootCmd.PersistentFlags().StringVarP(&address, "addr", "a", defaultAddr, "gRPC server address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "timeout for unary calls")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print responses as JSON")

	rootCmd.AddCommand(listCmd, createCmd, getCmd, updateCmd, deleteCmd, watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// dial создает клиент NotesService. Возвращенную функцию нужно вызвать для закрытия соединения.
func dial() (notesv1.NotesServiceClient, func(), error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return notesv1.NewNotesServiceClient(conn), func() { _ = conn.Close() }, nil
}

// unary выполняет один вызов с таймаутом --timeout
func unary(cmd *cobra.Command, call func(ctx context.Context, client notesv1.NotesServiceClient) error) error {
	client, closeConn, err := dial()
	if err != nil {
		return err
	}
	defer closeConn()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	return call(ctx, client)
}
