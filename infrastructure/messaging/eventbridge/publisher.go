// Package eventbridge publishes domain events to an AWS EventBridge
// bus. Notification scheduling and analytics consume them through
// externally managed rules.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"saju-backend/application/ports"
	"saju-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const eventSource = "saju.insights"

// Publisher implements ports.EventPublisher using AWS EventBridge.
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates a new EventBridge publisher.
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends one event to EventBridge. Callers treat failures as
// non-fatal; this method only reports them.
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	entry := types.PutEventsRequestEntry{
		EventBusName: aws.String(p.eventBusName),
		Source:       aws.String(eventSource),
		DetailType:   aws.String(event.GetEventType()),
		Detail:       aws.String(string(detail)),
		Time:         aws.Time(event.GetTimestamp()),
		Resources: []string{
			fmt.Sprintf("arn:aws:saju::%s", event.GetAggregateID()),
		},
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		return fmt.Errorf("failed to publish event to EventBridge: %w", err)
	}

	if result.FailedEntryCount > 0 {
		for _, e := range result.Entries {
			if e.ErrorCode != nil {
				p.logger.Error("event entry rejected",
					zap.String("event_type", event.GetEventType()),
					zap.String("error_code", *e.ErrorCode),
					zap.String("error_message", aws.ToString(e.ErrorMessage)),
				)
			}
		}
		return fmt.Errorf("event entry rejected by EventBridge")
	}

	p.logger.Debug("event published",
		zap.String("event_id", event.GetEventID()),
		zap.String("event_type", event.GetEventType()),
		zap.String("event_bus", p.eventBusName),
	)

	return nil
}
