package report

import (
	"context"
	"fmt"
	"log/slog"

	"health-risk-analyzer/internal/assessment"
)

type TelegramClient interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, fileData []byte, fileName string) error
}

// Notifier sends danger-band assessments to a clinician chat.
type Notifier struct {
	tgClient TelegramClient
	renderer *Renderer
	chatID   int64
	logger   *slog.Logger
}

func NewNotifier(tg TelegramClient, renderer *Renderer, chatID int64, logger *slog.Logger) *Notifier {
	return &Notifier{
		tgClient: tg,
		renderer: renderer,
		chatID:   chatID,
		logger:   logger,
	}
}

func (n *Notifier) NotifyHighRisk(ctx context.Context, rec assessment.AnalysisRecord, res assessment.Result) error {
	text := fmt.Sprintf("High metabolic risk: %s (age %d) scored %.1f. Factors: %d.",
		rec.Name, rec.Age, res.Scores.Metabolic, len(res.Factors))
	if err := n.tgClient.SendMessage(ctx, n.chatID, text); err != nil {
		return err
	}

	pdf, err := n.renderer.Render(rec, res)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	fileName := fmt.Sprintf("report_%s.pdf", rec.ID)
	n.logger.Info("sending high-risk report", "record_id", rec.ID, "chat_id", n.chatID)
	return n.tgClient.SendDocument(ctx, n.chatID, pdf, fileName)
}
