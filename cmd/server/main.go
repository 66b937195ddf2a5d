package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	claimshandler "legatia/internal/claims/handler"
	claimsmetrics "legatia/internal/claims/metrics"
	claimsservice "legatia/internal/claims/service"
	familyhandler "legatia/internal/family/handler"
	familymetrics "legatia/internal/family/metrics"
	familyservice "legatia/internal/family/service"
	identityhandler "legatia/internal/identity/handler"
	identityservice "legatia/internal/identity/service"
	invitationshandler "legatia/internal/invitations/handler"
	invitationsmetrics "legatia/internal/invitations/metrics"
	invitationsservice "legatia/internal/invitations/service"
	jwttoken "legatia/internal/jwt_token"
	matchinghandler "legatia/internal/matching/handler"
	matchingservice "legatia/internal/matching/service"
	notificationscache "legatia/internal/notifications/cache"
	notificationshandler "legatia/internal/notifications/handler"
	notificationsmetrics "legatia/internal/notifications/metrics"
	notificationsservice "legatia/internal/notifications/service"
	ratelimitmetrics "legatia/internal/ratelimit/metrics"
	ratelimitmw "legatia/internal/ratelimit/middleware"
	ratelimitmodels "legatia/internal/ratelimit/models"
	ratelimitservice "legatia/internal/ratelimit/service"
	"legatia/internal/ratelimit/store/bucket"
	"legatia/internal/platform/config"
	"legatia/internal/platform/httpserver"
	"legatia/internal/platform/kafka"
	"legatia/internal/platform/logger"
	"legatia/internal/platform/metrics"
	"legatia/internal/platform/redis"
	"legatia/internal/sweeper"
	httptransport "legatia/internal/transport/http"
	"legatia/pkg/platform/audit/publishers/compliance"
	"legatia/pkg/platform/audit/worker"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and runs the
// background workers. Business logic lives in internal services packages.
func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("legatia exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := newBackend(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer be.close()

	health := map[string]httptransport.HealthCheck{"storage": be.health}

	auditor := compliance.New(be.audit,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics()),
	)

	var buckets ratelimitservice.BucketStore = bucket.NewInMemoryBucketStore()
	notifOpts := []notificationsservice.Option{
		notificationsservice.WithLogger(log),
		notificationsservice.WithMetrics(notificationsmetrics.New()),
	}
	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	if rc != nil {
		defer rc.Close()
		health["redis"] = rc.Health
		buckets = bucket.NewRedisStore(rc.Client)
		notifOpts = append(notifOpts, notificationsservice.WithUnreadCache(
			notificationscache.NewUnreadCache(rc.Client, notificationscache.WithTTL(cfg.Redis.UnreadTTL)),
		))
	}
	notifications := notificationsservice.New(be.notifications, notifOpts...)

	identity := identityservice.New(be.profiles, identityservice.WithLogger(log))
	matching := matchingservice.New(be.families, identity,
		matchingservice.WithLogger(log),
		matchingservice.WithThreshold(cfg.Workflow.MatchThreshold),
	)
	claims := claimsservice.New(be.claims, be.families, identity, be.tx, notifications,
		claimsservice.WithLogger(log),
		claimsservice.WithMetrics(claimsmetrics.New()),
		claimsservice.WithAuditPublisher(auditor),
		claimsservice.WithRetention(cfg.Workflow.ClaimRetention),
	)
	invitations := invitationsservice.New(be.invitations, be.families, identity, be.tx, notifications,
		invitationsservice.WithLogger(log),
		invitationsservice.WithMetrics(invitationsmetrics.New()),
		invitationsservice.WithAuditPublisher(auditor),
		invitationsservice.WithRetention(cfg.Workflow.InvitationRetention),
	)
	families := familyservice.New(be.families, identity, be.tx,
		familyservice.WithLogger(log),
		familyservice.WithMetrics(familymetrics.New()),
		familyservice.WithAuditPublisher(auditor),
		familyservice.WithMemberRemovalHook(claims),
	)

	var relay *worker.Relay
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return fmt.Errorf("init kafka: %w", err)
		}
		defer producer.Close()
		if err := producer.EnsureTopic(ctx, 1, 1); err != nil {
			return fmt.Errorf("ensure audit topic: %w", err)
		}
		health["kafka"] = producer.Ping
		relay = worker.NewRelay(be.audit, producer,
			worker.WithLogger(log),
			worker.WithInterval(cfg.Kafka.PollInterval),
			worker.WithBatchSize(cfg.Kafka.BatchSize),
			worker.WithTx(be.relayTx),
		)
	} else {
		log.Info("KAFKA_BROKERS not set, audit events stay in the outbox")
	}

	limiter, err := ratelimitservice.New(buckets,
		ratelimitservice.WithLogger(log),
		ratelimitservice.WithMetrics(ratelimitmetrics.New()),
		ratelimitservice.WithLimit(ratelimitmodels.ClassRead, perMinute(cfg.RateLimit.ReadPerMinute)),
		ratelimitservice.WithLimit(ratelimitmodels.ClassWrite, perMinute(cfg.RateLimit.WritePerMinute)),
		ratelimitservice.WithLimit(ratelimitmodels.ClassWorkflow, perMinute(cfg.RateLimit.WorkflowPerMinute)),
	)
	if err != nil {
		return fmt.Errorf("init rate limiter: %w", err)
	}
	rateLimit := ratelimitmw.New(limiter, log, ratelimitmw.WithDisabled(cfg.RateLimit.Disabled))

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	router := httptransport.NewRouter(httptransport.Config{
		Logger:    log,
		Auth:      jwttoken.NewJWTServiceAdapter(jwtService),
		Metrics:   metrics.New(),
		Health:    health,
		RateLimit: rateLimit.RateLimitAuthenticated,
		Handlers: []httptransport.Registrar{
			identityhandler.New(identity, log),
			familyhandler.New(families, log),
			matchinghandler.New(matching, log),
			claimshandler.New(claims, log),
			invitationshandler.New(invitations, log),
			notificationshandler.New(notifications, log),
		},
	})
	srv := httpserver.New(cfg.Addr, router, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting legatia", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	sweep := sweeper.New(map[string]sweeper.Expirer{
		"claims":      claims,
		"invitations": invitations,
	}, sweeper.WithLogger(log), sweeper.WithInterval(cfg.Workflow.SweepInterval))
	g.Go(func() error {
		return ignoreCancel(sweep.Run(gctx))
	})
	if relay != nil {
		g.Go(func() error {
			return ignoreCancel(relay.Run(gctx))
		})
	}

	return g.Wait()
}

func perMinute(n int) ratelimitmodels.Limit {
	return ratelimitmodels.Limit{Requests: n, Window: time.Minute}
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
