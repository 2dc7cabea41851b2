package notify

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/samims/pipenotify/internal/errors"
)

type fakeSNS struct {
	in  *sns.PublishInput
	err error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSNSPublisherPublish(t *testing.T) {
	api := &fakeSNS{}
	p := NewSNSPublisher(api, slog.Default())

	err := p.Publish(context.Background(), "arn:aws:sns:us-east-1:123456789012:approvals", "body", "Pipeline Approval Required: checkout-svc")
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:approvals", aws.ToString(api.in.TopicArn))
	assert.Equal(t, "body", aws.ToString(api.in.Message))
	assert.Equal(t, "Pipeline Approval Required: checkout-svc", aws.ToString(api.in.Subject))
}

func TestSNSPublisherError(t *testing.T) {
	cause := errors.New("AuthorizationError")
	p := NewSNSPublisher(&fakeSNS{err: cause}, slog.Default())

	err := p.Publish(context.Background(), "arn", "body", "subject")
	assert.ErrorIs(t, err, appErr.ErrPublish)
	assert.ErrorIs(t, err, cause)
}
