package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/samims/pipenotify/internal/model"
	"github.com/samims/pipenotify/internal/service"
)

type fakeSession struct {
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Claims() map[string][]int32 { return map[string][]int32{"approvals": {0}} }
func (s *fakeSession) MemberID() string           { return "member-1" }
func (s *fakeSession) GenerationID() int32        { return 1 }
func (s *fakeSession) MarkOffset(string, int32, int64, string) {}
func (s *fakeSession) Commit()                                 {}
func (s *fakeSession) ResetOffset(string, int32, int64, string) {}
func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}
func (s *fakeSession) Context() context.Context { return s.ctx }

type fakeClaim struct {
	msgs chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Topic() string                            { return "approvals" }
func (c *fakeClaim) Partition() int32                         { return 0 }
func (c *fakeClaim) InitialOffset() int64                     { return 0 }
func (c *fakeClaim) HighWaterMarkOffset() int64               { return int64(len(c.msgs)) }
func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.msgs }

func newClaim(values ...[]byte) *fakeClaim {
	c := &fakeClaim{msgs: make(chan *sarama.ConsumerMessage, len(values))}
	for i, v := range values {
		c.msgs <- &sarama.ConsumerMessage{Topic: "approvals", Offset: int64(i), Value: v}
	}
	close(c.msgs)
	return c
}

func TestConsumeClaimForwardsEachMessage(t *testing.T) {
	first, _ := json.Marshal(model.Notification{Subject: "Pipeline Approval Required: checkout-svc", Message: "ex-1"})
	second, _ := json.Marshal(model.Notification{Message: "no subject"})

	fwd := service.NewMockForwarderService(t)
	fwd.On("Forward", mock.Anything, "https://hooks.example/T", []model.Delivery{{Subject: "Pipeline Approval Required: checkout-svc", Message: "ex-1"}}).
		Return(model.OK(model.ForwarderResponseBody), service.ForwardResult{Attempted: 1, Sent: 1}).Once()
	fwd.On("Forward", mock.Anything, "https://hooks.example/T", []model.Delivery{{Message: "no subject"}}).
		Return(model.OK(model.ForwarderResponseBody), service.ForwardResult{Attempted: 1, Failed: 1}).Once()

	c := NewKafkaConsumer("approvals", "https://hooks.example/T", nil, fwd, slog.Default())
	session := &fakeSession{ctx: context.Background()}

	require.NoError(t, c.ConsumeClaim(session, newClaim(first, second)))
	assert.Equal(t, []int64{0, 1}, session.marked)
}

func TestConsumeClaimSkipsUndecodableMessages(t *testing.T) {
	good, _ := json.Marshal(model.Notification{Subject: "s", Message: "m"})

	fwd := service.NewMockForwarderService(t)
	fwd.On("Forward", mock.Anything, "https://hooks.example/T", []model.Delivery{{Subject: "s", Message: "m"}}).
		Return(model.OK(model.ForwarderResponseBody), service.ForwardResult{Attempted: 1, Sent: 1}).Once()

	c := NewKafkaConsumer("approvals", "https://hooks.example/T", nil, fwd, slog.Default())
	session := &fakeSession{ctx: context.Background()}

	require.NoError(t, c.ConsumeClaim(session, newClaim([]byte("{not json"), good)))
	assert.Equal(t, []int64{0, 1}, session.marked)
}
