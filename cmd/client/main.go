package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"legatia/internal/client"
	"legatia/internal/client/store"
	jwttoken "legatia/internal/jwt_token"
	"legatia/internal/platform/config"
	"legatia/internal/platform/logger"
	id "legatia/pkg/domain"
)

const usage = `usage: legatia-client [-offline] <command> [args]

commands:
  sync                                          refresh the local snapshot
  matches                                       list ghost-profile matches
  claim <family-id> <member-id>                 claim a ghost profile
  approve <claim-id> [message]                  approve a pending claim
  reject <claim-id> [message]                   reject a pending claim
  cancel <claim-id>                             cancel one of your claims
  invite <family-id> <user-id> <relationship> [message]
  accept <invitation-id>                        accept an invitation
  decline <invitation-id>                       decline an invitation
  notifications                                 list notifications
  read <notification-id>                        mark one notification read
  read-all                                      mark every notification read
  visibility <family-id> <true|false>           show or hide a family
  remove-member <family-id> <member-id>         remove a member`

// main loads the local snapshot, reconciles it with the server, runs one
// command and persists the result.
func main() {
	log := logger.NewWithWriter(os.Stderr, os.Getenv("LOG_LEVEL"))
	if err := run(log, os.Args[1:], os.Stdout); err != nil {
		log.Error("legatia-client failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("legatia-client", flag.ContinueOnError)
	offline := fs.Bool("offline", false, "print the saved snapshot without contacting the server")
	fs.Usage = func() { fmt.Fprintln(fs.Output(), usage) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.ClientFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	tokens, err := tokenSource(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snapshots, err := store.Open(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	defer snapshots.Close()

	cached, err := snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if *offline {
		return printJSON(out, cached)
	}

	rec := client.NewReconciler(client.NewRemote(cfg.ServerURL, tokens),
		client.WithLogger(log),
		client.WithCache(cached),
	)
	if err := rec.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	result, cmdErr := runCommand(ctx, rec, fs.Args())
	// the reconciler's view is saved even when the command failed, since a
	// failed action may still have re-fetched state
	if err := snapshots.Save(ctx, rec.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if cmdErr != nil {
		return cmdErr
	}
	return printJSON(out, result)
}

func tokenSource(cfg config.Client) (client.TokenSource, error) {
	if cfg.Token != "" {
		return client.StaticToken(cfg.Token), nil
	}
	userID, err := id.ParseUserID(cfg.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse LEGATIA_USER_ID: %w", err)
	}
	jwt := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	return client.NewJWTSource(jwt, userID, cfg.TokenTTL), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
