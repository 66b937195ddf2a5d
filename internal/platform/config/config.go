package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	DatabaseURL   string
	Redis         RedisConfig
	Kafka         KafkaConfig
	Workflow      WorkflowConfig
	RateLimit     RateLimitConfig
}

// RedisConfig configures the optional Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	UnreadTTL    time.Duration
}

// KafkaConfig configures the audit outbox relay. No brokers disables the relay.
type KafkaConfig struct {
	Brokers      []string
	AuditTopic   string
	PollInterval time.Duration
	BatchSize    int
}

// RateLimitConfig sets the per-user request allowances per minute. Buckets
// live in Redis when it is configured and in process memory otherwise.
type RateLimitConfig struct {
	Disabled          bool
	ReadPerMinute     int
	WritePerMinute    int
	WorkflowPerMinute int
}

// WorkflowConfig holds the policy constants of the claim and invitation workflows.
type WorkflowConfig struct {
	MatchThreshold      int
	ClaimRetention      time.Duration
	InvitationRetention time.Duration
	SweepInterval       time.Duration
	TxTimeout           time.Duration
}

// DefaultMatchThreshold is the minimum similarity score a ghost member needs
// to be offered as a match.
const DefaultMatchThreshold = 75

// DefaultRetention is how long a Pending claim or invitation stays actionable.
const DefaultRetention = 30 * 24 * time.Hour

// DefaultWorkflow returns the workflow policy used when nothing is configured.
func DefaultWorkflow() WorkflowConfig {
	return WorkflowConfig{
		MatchThreshold:      DefaultMatchThreshold,
		ClaimRetention:      DefaultRetention,
		InvitationRetention: DefaultRetention,
		SweepInterval:       time.Hour,
		TxTimeout:           5 * time.Second,
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:          envOr("LEGATIA_ADDR", ":8080"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envOr("JWT_ISSUER", "legatia"),
		JWTAudience:   envOr("JWT_AUDIENCE", "legatia-api"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			UnreadTTL:    time.Minute,
		},
		Kafka: KafkaConfig{
			AuditTopic:   envOr("KAFKA_AUDIT_TOPIC", "legatia.audit"),
			PollInterval: time.Second,
			BatchSize:    100,
		},
		Workflow: DefaultWorkflow(),
		RateLimit: RateLimitConfig{
			Disabled:          os.Getenv("RATE_LIMIT_DISABLED") == "true",
			ReadPerMinute:     300,
			WritePerMinute:    60,
			WorkflowPerMinute: 30,
		},
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}

	var err error
	if cfg.Redis.PoolSize, err = intFromEnv("REDIS_POOL_SIZE", cfg.Redis.PoolSize); err != nil {
		return Server{}, err
	}
	if cfg.Redis.UnreadTTL, err = durationFromEnv("REDIS_UNREAD_TTL", cfg.Redis.UnreadTTL); err != nil {
		return Server{}, err
	}
	if cfg.Kafka.PollInterval, err = durationFromEnv("OUTBOX_POLL_INTERVAL", cfg.Kafka.PollInterval); err != nil {
		return Server{}, err
	}
	if cfg.Workflow.MatchThreshold, err = intFromEnv("MATCH_THRESHOLD", cfg.Workflow.MatchThreshold); err != nil {
		return Server{}, err
	}
	if cfg.Workflow.MatchThreshold < 0 || cfg.Workflow.MatchThreshold > 100 {
		return Server{}, fmt.Errorf("MATCH_THRESHOLD must be within [0,100], got %d", cfg.Workflow.MatchThreshold)
	}
	if cfg.Workflow.ClaimRetention, err = durationFromEnv("CLAIM_RETENTION", cfg.Workflow.ClaimRetention); err != nil {
		return Server{}, err
	}
	if cfg.Workflow.InvitationRetention, err = durationFromEnv("INVITATION_RETENTION", cfg.Workflow.InvitationRetention); err != nil {
		return Server{}, err
	}
	if cfg.Workflow.SweepInterval, err = durationFromEnv("SWEEP_INTERVAL", cfg.Workflow.SweepInterval); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.WorkflowPerMinute, err = intFromEnv("RATE_LIMIT_WORKFLOW_PER_MINUTE", cfg.RateLimit.WorkflowPerMinute); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.WritePerMinute, err = intFromEnv("RATE_LIMIT_WRITE_PER_MINUTE", cfg.RateLimit.WritePerMinute); err != nil {
		return Server{}, err
	}
	if cfg.RateLimit.ReadPerMinute, err = intFromEnv("RATE_LIMIT_READ_PER_MINUTE", cfg.RateLimit.ReadPerMinute); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Client captures the settings of the command-line client. Either Token or
// UserID must be set; with UserID the client mints its own access tokens from
// the shared JWT settings.
type Client struct {
	ServerURL     string
	SnapshotPath  string
	Token         string
	UserID        string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
}

// ClientFromEnv builds a Client config from environment variables.
func ClientFromEnv() (Client, error) {
	cfg := Client{
		ServerURL:     envOr("LEGATIA_SERVER_URL", "http://localhost:8080/api/v1"),
		SnapshotPath:  envOr("LEGATIA_SNAPSHOT", "legatia-client.db"),
		Token:         os.Getenv("LEGATIA_TOKEN"),
		UserID:        os.Getenv("LEGATIA_USER_ID"),
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envOr("JWT_ISSUER", "legatia"),
		JWTAudience:   envOr("JWT_AUDIENCE", "legatia-api"),
		TokenTTL:      15 * time.Minute,
	}
	var err error
	if cfg.TokenTTL, err = durationFromEnv("LEGATIA_TOKEN_TTL", cfg.TokenTTL); err != nil {
		return Client{}, err
	}
	if cfg.Token == "" && cfg.UserID == "" {
		return Client{}, fmt.Errorf("one of LEGATIA_TOKEN or LEGATIA_USER_ID is required")
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intFromEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return v, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return v, nil
}
