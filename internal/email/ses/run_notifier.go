package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"formpilot/internal/domain"
	"formpilot/internal/port"
)

type sesNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	toAddress   string
}

// NewRunNotifier creates an SES-backed RunNotifier that mails a summary of
// each populate run to a fixed operator address.
func NewRunNotifier(region, fromAddress, fromName, toAddress string) (port.RunNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesNotifier{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
	}, nil
}

func (s *sesNotifier) SendRunSummary(ctx context.Context, artifact *domain.SessionArtifact) error {
	subject := fmt.Sprintf("Form run %s: %d of %d fields filled", artifact.RunID, artifact.FilledCount, artifact.AttemptedCount)
	htmlBody := buildRunSummaryHTML(artifact)
	textBody := fmt.Sprintf(
		"Run %s against %s finished.\n\nFields filled: %d of %d attempted\nDeterministic matches: %d\nModel-mapped: %d\nSession: %s\nViewer: %s\nScreenshot: %s\n",
		artifact.RunID, artifact.FormURL, artifact.FilledCount, artifact.AttemptedCount,
		artifact.DeterministicMatched, artifact.ModelMappedAdditional,
		artifact.SessionID, artifact.ViewerURL, artifact.ScreenshotLocation,
	)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildRunSummaryHTML(artifact *domain.SessionArtifact) string {
	viewer := artifact.ViewerURL
	if viewer == "" {
		viewer = "not available"
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Form population run %s</h2>
  <p>Target form: <a href="%s">%s</a></p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><td style="padding: 6px 12px; color: #666;">Fields filled</td><td style="padding: 6px 12px;"><strong>%d of %d</strong></td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Deterministic matches</td><td style="padding: 6px 12px;">%d</td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Model-mapped fields</td><td style="padding: 6px 12px;">%d</td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Browser session</td><td style="padding: 6px 12px;">%s</td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Live viewer</td><td style="padding: 6px 12px;">%s</td></tr>
    <tr><td style="padding: 6px 12px; color: #666;">Screenshot</td><td style="padding: 6px 12px;">%s</td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">formpilot - automated form population</p>
</body>
</html>`, artifact.RunID, artifact.FormURL, artifact.FormURL,
		artifact.FilledCount, artifact.AttemptedCount,
		artifact.DeterministicMatched, artifact.ModelMappedAdditional,
		artifact.SessionID, viewer, artifact.ScreenshotLocation)
}
