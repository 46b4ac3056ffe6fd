// Package main starts the invitation landing service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	invitecmd "github.com/ccotek/cocoti-invitation-page/internal/cmd/invite"
)

func main() {
	log.SetPrefix("[INVITE] ")
	cfg, err := invitecmd.ParseConfig()
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := invitecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
