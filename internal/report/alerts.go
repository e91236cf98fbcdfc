package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wonny/tradekit/internal/market"
	"github.com/wonny/tradekit/pkg/config"
	"github.com/wonny/tradekit/pkg/httputil"
	"github.com/wonny/tradekit/pkg/logger"
)

// Alerter sends Slack notifications for high-scoring candidates.
type Alerter struct {
	cfg        config.AlertConfig
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewAlerter creates an Alerter. A missing webhook URL makes every
// send a logged no-op.
func NewAlerter(cfg config.AlertConfig, httpClient *httputil.Client, log *logger.Logger) *Alerter {
	return &Alerter{cfg: cfg, httpClient: httpClient, logger: log}
}

// slackPayload is the incoming-webhook message body.
type slackPayload struct {
	Text string `json:"text"`
}

// Send posts a message to the configured Slack webhook.
func (a *Alerter) Send(ctx context.Context, message string) error {
	if a.cfg.SlackWebhookURL == "" {
		a.logger.Debug("No Slack webhook configured, skipping alert")
		return nil
	}

	resp, err := a.httpClient.PostJSON(ctx, a.cfg.SlackWebhookURL, slackPayload{Text: message})
	if err != nil {
		return fmt.Errorf("send slack alert: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// AlertHighScores sends one message listing every candidate at or above
// the score threshold. Nothing is sent when none qualify.
func (a *Alerter) AlertHighScores(ctx context.Context, ranked []market.RankedCandidate) error {
	var lines []string
	for _, r := range ranked {
		if r.Score.Total >= a.cfg.ScoreThreshold {
			lines = append(lines, fmt.Sprintf("%s — score %.0f (%s) at $%.2f",
				r.Ticker, r.Score.Total, r.Score.Grade, r.Price))
		}
	}
	if len(lines) == 0 {
		return nil
	}

	message := fmt.Sprintf("*High-score candidates (>= %.0f)*\n%s",
		a.cfg.ScoreThreshold, strings.Join(lines, "\n"))
	return a.Send(ctx, message)
}
