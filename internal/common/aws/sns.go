// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Publisher is the subset of the SNS API used here.
type Publisher interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func NewSNSClient(ctx context.Context, region string) (*sns.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return sns.NewFromConfig(cfg), nil
}

// AnalysisEvent is the message body published when an analysis completes.
type AnalysisEvent struct {
	Event      string        `json:"event"`
	AnalysisID string        `json:"analysisId"`
	Company    string        `json:"company,omitempty"`
	Action     models.Action `json:"action,omitempty"`
	Scores     models.Scores `json:"scores"`
	Confidence int           `json:"confidence"`
	Timestamp  time.Time     `json:"timestamp"`
}

// SNSNotifier publishes analysis completion events to a topic.
type SNSNotifier struct {
	publisher Publisher
	topicARN  string
	logger    logger.Logger
}

func NewSNSNotifier(publisher Publisher, topicARN string, log logger.Logger) *SNSNotifier {
	return &SNSNotifier{
		publisher: publisher,
		topicARN:  topicARN,
		logger:    log.WithFields(map[string]interface{}{"component": "sns"}),
	}
}

func (n *SNSNotifier) NotifyAnalysisCompleted(ctx context.Context, analysis *models.StoredAnalysis) error {
	event := AnalysisEvent{
		Event:      "analysis.completed",
		AnalysisID: analysis.ID,
		Scores:     analysis.Scores,
		Confidence: analysis.Confidence.Overall,
		Timestamp:  analysis.Timestamp,
	}
	if analysis.Memo != nil {
		event.Company = analysis.Memo.ExecutiveSummary.Company
		event.Action = analysis.Memo.Recommendation.Action
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errors.NewNotificationSendFailedError("sns", fmt.Errorf("encode event: %w", err))
	}

	out, err := n.publisher.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Subject:  awssdk.String("Startup analysis completed"),
		Message:  awssdk.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"action": {
				DataType:    awssdk.String("String"),
				StringValue: awssdk.String(string(event.Action)),
			},
		},
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("sns", err)
	}

	n.logger.Info("analysis notification published", map[string]interface{}{
		"analysisId": analysis.ID,
		"messageId":  awssdk.ToString(out.MessageId),
	})
	return nil
}
