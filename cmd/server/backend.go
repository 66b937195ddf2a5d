package main

import (
	"context"
	"database/sql"
	"log/slog"

	claimsservice "legatia/internal/claims/service"
	claimstore "legatia/internal/claims/store/claim"
	familyservice "legatia/internal/family/service"
	familystore "legatia/internal/family/store/family"
	identityservice "legatia/internal/identity/service"
	profilestore "legatia/internal/identity/store/profile"
	invitationsservice "legatia/internal/invitations/service"
	invitationstore "legatia/internal/invitations/store/invitation"
	matchingservice "legatia/internal/matching/service"
	notificationsservice "legatia/internal/notifications/service"
	notificationstore "legatia/internal/notifications/store/notification"
	"legatia/internal/platform/config"
	"legatia/internal/platform/memtx"
	"legatia/internal/platform/postgres"
	id "legatia/pkg/domain"
	audit "legatia/pkg/platform/audit"
	auditmemory "legatia/pkg/platform/audit/store/memory"
	auditpostgres "legatia/pkg/platform/audit/store/postgres"
	"legatia/pkg/platform/audit/worker"
)

type familyTx interface {
	RunInFamilyTx(ctx context.Context, familyID id.FamilyID, fn func(ctx context.Context) error) error
}

// familyStore is the union of what the services need from the family store.
type familyStore interface {
	familyservice.FamilyStore
	claimsservice.FamilyStore
	invitationsservice.FamilyStore
	matchingservice.FamilyLister
}

type auditStore interface {
	audit.Store
	audit.Outbox
}

// backend groups the stores for one persistence mode.
type backend struct {
	tx            familyTx
	profiles      identityservice.ProfileStore
	families      familyStore
	claims        claimsservice.Store
	invitations   invitationsservice.Store
	notifications notificationsservice.Store
	audit         auditStore
	relayTx       worker.TxRunner
	health        func(ctx context.Context) error
	close         func()
}

// newBackend selects Postgres when DATABASE_URL is set and the in-memory
// stores otherwise.
func newBackend(ctx context.Context, cfg config.Server, logger *slog.Logger) (*backend, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		return newMemoryBackend(cfg), nil
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return newPostgresBackend(cfg, db), nil
}

func newMemoryBackend(cfg config.Server) *backend {
	db := memtx.New(memtx.WithTimeout(cfg.Workflow.TxTimeout))
	return &backend{
		tx:            db,
		profiles:      profilestore.NewInMemory(db),
		families:      familystore.NewInMemory(db),
		claims:        claimstore.NewInMemory(db),
		invitations:   invitationstore.NewInMemory(db),
		notifications: notificationstore.NewInMemory(db),
		audit:         auditmemory.NewInMemoryStore(db),
		relayTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		health: func(context.Context) error { return nil },
		close:  func() {},
	}
}

func newPostgresBackend(cfg config.Server, db *sql.DB) *backend {
	return &backend{
		tx:            postgres.NewFamilyTx(db, cfg.Workflow.TxTimeout),
		profiles:      profilestore.NewPostgres(db),
		families:      familystore.NewPostgres(db),
		claims:        claimstore.NewPostgres(db),
		invitations:   invitationstore.NewPostgres(db),
		notifications: notificationstore.NewPostgres(db),
		audit:         auditpostgres.New(db),
		relayTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgres.WithTx(ctx, db, func(ctx context.Context, _ *sql.Tx) error {
				return fn(ctx)
			})
		},
		health: db.PingContext,
		close:  func() { _ = db.Close() },
	}
}
