package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"relay-backend/internal/chatclient"
	"relay-backend/internal/ui"
)

func main() {
	godotenv.Load()

	defaultServer := os.Getenv("RELAY_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:5001"
	}

	server := flag.String("server", defaultServer, "Relay server base URL")
	logPath := flag.String("log", "", "Write client logs to this file")
	flag.Parse()

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	logOut, err := openLog(*logPath)
	if err != nil {
		log.Fatalf("✗ Failed to open log file: %v", err)
	}
	defer logOut.Close()
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	session, err := chatclient.NewSession(chatclient.New(*server), logger)
	if err != nil {
		log.Fatalf("✗ Failed to create chat session: %v", err)
	}

	if err := ui.New(context.Background(), session).Run(); err != nil {
		log.Fatalf("✗ UI error: %v", err)
	}
}

func openLog(path string) (*os.File, error) {
	if path == "" {
		return os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
