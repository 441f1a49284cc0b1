package notify

import (
	"context"
	"fmt"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-harvester/internal/domain/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

type apiInterface interface {
	Send(chattable botApi.Chattable) (botApi.Message, error)
}

// TelegramNotifier sends a short summary of every run to one chat.
type TelegramNotifier struct {
	api    apiInterface
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {

	if chatID == 0 {
		return nil, errors.New("chat id is required")
	}

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, report models.RunReport, runErr error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := n.api.Send(botApi.NewMessage(n.chatID, FormatSummary(report, runErr)))
	return err
}

func FormatSummary(report models.RunReport, runErr error) string {
	var sb strings.Builder

	if runErr != nil {
		sb.WriteString(fmt.Sprintf("Run %v failed: %v\n", report.ID, runErr))
	} else {
		sb.WriteString(fmt.Sprintf("Run %v finished\n", report.ID))
	}

	sb.WriteString(fmt.Sprintf("Collected %v of %v vacancies, %v failed",
		report.Collected, report.Discovered, report.FailedCount()))

	if !report.StartedAt.IsZero() && !report.FinishedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("\nDuration: %v", report.FinishedAt.Sub(report.StartedAt).Round(time.Second)))
	}
	return sb.String()
}
