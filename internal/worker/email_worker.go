package worker

// email_worker.go
// Processes fire-and-forget email jobs from QueueEmail (account-created
// notices and similar). Failed sends go to the DLQ for manual inspection —
// unlike the batch notifications, these carry no retry timestamp in the DB.

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// Sender delivers one email; implemented by infra.Mailer.
type Sender interface {
	Send(to []string, subject, body, attachmentPath string) error
}

// EmailWorker processes email jobs from QueueEmail.
type EmailWorker struct {
	mailer Sender
	rdb    *redis.Client
}

func NewEmailWorker(mailer Sender, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, rdb: rdb}
}

// Process sends the email; on failure the job lands in the DLQ.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if len(payload.To) == 0 {
		log.Warn().Msg("email_worker: no recipients — skipping")
		return
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, ""); err != nil {
		log.Error().Err(err).Strs("to", payload.To).Msg("email_worker: failed to send email")
		SendToDLQ(ctx, w.rdb, QueueEmail, "email", raw, err.Error(), 1)
		return
	}
	log.Info().Strs("to", payload.To).Str("subject", payload.Subject).Msg("email_worker: sent")
}
