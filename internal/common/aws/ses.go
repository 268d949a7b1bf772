// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"
	"strings"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// EmailSender is the subset of the SES API used here.
type EmailSender interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return ses.NewFromConfig(cfg), nil
}

// SESNotifier emails the memo summary of each completed analysis.
type SESNotifier struct {
	sender EmailSender
	from   string
	to     []string
	logger logger.Logger
}

func NewSESNotifier(sender EmailSender, from string, to []string, log logger.Logger) *SESNotifier {
	return &SESNotifier{
		sender: sender,
		from:   from,
		to:     to,
		logger: log.WithFields(map[string]interface{}{"component": "ses"}),
	}
}

func (n *SESNotifier) NotifyAnalysisCompleted(ctx context.Context, analysis *models.StoredAnalysis) error {
	subject, body := renderEmail(analysis)

	out, err := n.sender.SendEmail(ctx, &ses.SendEmailInput{
		Source:      awssdk.String(n.from),
		Destination: &types.Destination{ToAddresses: n.to},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(subject)},
			Body:    &types.Body{Text: &types.Content{Data: awssdk.String(body)}},
		},
	})
	if err != nil {
		return errors.NewNotificationSendFailedError("ses", err)
	}

	n.logger.Info("analysis email sent", map[string]interface{}{
		"analysisId": analysis.ID,
		"recipients": len(n.to),
		"messageId":  awssdk.ToString(out.MessageId),
	})
	return nil
}

func renderEmail(a *models.StoredAnalysis) (string, string) {
	company := "Startup"
	var action models.Action
	var b strings.Builder

	if a.Memo != nil {
		company = a.Memo.ExecutiveSummary.Company
		action = a.Memo.Recommendation.Action
	}
	fmt.Fprintf(&b, "Analysis %s\n\n", a.ID)
	fmt.Fprintf(&b, "Recommendation: %s (overall %d/100, confidence %d%%)\n\n", action, a.Scores.Overall, a.Confidence.Overall)
	fmt.Fprintf(&b, "Founder:  %d\nMarket:   %d\nBusiness: %d\nRisk:     %d\n",
		a.Scores.Founder, a.Scores.Market, a.Scores.Business, a.Scores.Risk)

	if a.Memo != nil {
		if summary := a.Memo.ExecutiveSummary.Summary; summary != "" {
			fmt.Fprintf(&b, "\n%s\n", summary)
		}
		if steps := a.Memo.NextSteps; len(steps) > 0 {
			b.WriteString("\nNext steps:\n")
			for _, s := range steps {
				fmt.Fprintf(&b, "- %s\n", s)
			}
		}
	}

	return fmt.Sprintf("%s: %s", company, action), b.String()
}
