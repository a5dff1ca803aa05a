package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

// snsAPI is the part of *sns.Client the alerter needs.
type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient wraps AWS SNS client for operating-state alerts
type SNSClient struct {
	svc      snsAPI
	topicArn string
}

// NewSNSClient loads the default AWS configuration for region.
func NewSNSClient(ctx context.Context, region, topicArn string) (*SNSClient, error) {
	if topicArn == "" {
		return nil, fmt.Errorf("sns topic arn is not configured")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return newSNSClient(sns.NewFromConfig(cfg), topicArn), nil
}

func newSNSClient(svc snsAPI, topicArn string) *SNSClient {
	return &SNSClient{svc: svc, topicArn: topicArn}
}

// SendAlert publishes one message to the alert topic.
func (c *SNSClient) SendAlert(ctx context.Context, subject, message string) error {
	input := &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	}

	result, err := c.svc.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}

	log.Info().Str("message_id", aws.ToString(result.MessageId)).Msg("alert sent")
	return nil
}

// SendStatusAlert tells operators that a run fell back off solar pumping.
func (c *SNSClient) SendStatusAlert(ctx context.Context, run *domain.Run) error {
	out := run.Output
	subject := fmt.Sprintf("Solar Pumping Alert: %s", out.State)
	message := fmt.Sprintf(
		"Operating State Alert\n\n"+
			"Status: %s\n"+
			"Model: %s\n"+
			"PV Power: %.2f kW\n"+
			"Pump Power: %.2f kW\n"+
			"Water Level: %.0f%%\n"+
			"Run: %s\n"+
			"Time: %s\n",
		out.State.Banner(),
		out.Variant,
		out.PVPowerKW,
		out.PumpPowerKW,
		run.Input.WaterLevel,
		run.ID,
		run.CreatedAt.Format(time.RFC3339),
	)

	return c.SendAlert(ctx, subject, message)
}
