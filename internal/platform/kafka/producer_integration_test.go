//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"legatia/internal/platform/kafka"
	"legatia/internal/platform/memtx"
	id "legatia/pkg/domain"
	audit "legatia/pkg/platform/audit"
	"legatia/pkg/platform/audit/store/memory"
	"legatia/pkg/platform/audit/worker"
	"legatia/pkg/testutil/containers"
)

type ProducerSuite struct {
	suite.Suite
	brokers []string
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	s.brokers = containers.GetManager().GetRedpanda(s.T()).Brokers
}

func (s *ProducerSuite) TestRelayPublishesOutboxToTopic() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "audit-" + uuid.NewString()

	producer, err := kafka.NewProducer(s.brokers, topic)
	s.Require().NoError(err)
	defer producer.Close()
	s.Require().NoError(producer.EnsureTopic(ctx, 1, 1))
	s.Require().NoError(producer.EnsureTopic(ctx, 1, 1), "idempotent")

	store := memory.NewInMemoryStore(memtx.New())
	familyID := id.NewFamilyID()
	s.Require().NoError(store.Append(ctx, audit.Event{FamilyID: familyID, Action: string(audit.EventClaimApproved)}))

	n, err := worker.NewRelay(store, producer).RunOnce(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().Empty(fetches.Errors())
	records := fetches.Records()
	s.Require().Len(records, 1)
	s.Equal(familyID.String(), string(records[0].Key))

	var payload audit.Payload
	s.Require().NoError(json.Unmarshal(records[0].Value, &payload))
	s.Equal("claim_approved", payload.Action)
	s.Equal("compliance", payload.Category)
}
