package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// HandleApplicationReceived sends the confirmation email for a stored application.
func HandleApplicationReceived(sender MailSender, log *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p ApplicationReceivedPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error("❌ payload decode error", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
		p.Normalize()

		if p.Email == "" {
			log.Warn("⚠️ application without email, skipping", zap.String("id", p.ApplicationID))
			return nil
		}

		html, err := RenderReceivedEmailHTML(ReceivedEmailData{
			Name:          p.Name,
			ApplicationID: p.ApplicationID,
		})
		if err != nil {
			return fmt.Errorf("render confirmation: %w", err)
		}

		if err := sender.Send(p.Email, receivedEmailSubject, html); err != nil {
			log.Error("❌ send mail failed", zap.String("to", p.Email), zap.Error(err))
			return err
		}

		log.Info("✅ confirmation sent", zap.String("id", p.ApplicationID))
		return nil
	}
}

// RegisterHandlers binds every task type the worker serves.
func RegisterHandlers(mux *asynq.ServeMux, sender MailSender, log *zap.Logger) {
	mux.HandleFunc(TypeApplicationReceived, HandleApplicationReceived(sender, log.Named("jobs")))
}
