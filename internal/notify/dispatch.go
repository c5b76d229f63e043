package notify

import (
	"log"

	"github.com/yourusername/lokanta-backend/internal/mailer"
	"github.com/yourusername/lokanta-backend/internal/models"
	"github.com/yourusername/lokanta-backend/internal/push"
)

// Result is the delivery outcome for a single recipient
type Result struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// Summary aggregates per-recipient results. A failed recipient is
// reported here and nowhere else: there is no retry or dead-letter.
type Summary struct {
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Results []Result `json:"results"`
}

func (s *Summary) record(recipient string, err error) {
	result := Result{Recipient: recipient, Success: err == nil}
	if err != nil {
		result.Error = err.Error()
		s.Failed++
	} else {
		s.Sent++
	}
	s.Results = append(s.Results, result)
}

// Email sends one message per recipient and collects the outcomes
func Email(sender mailer.Sender, recipients []string, subject, body string, html bool) Summary {
	var summary Summary

	for _, recipient := range recipients {
		err := sender.Send(&mailer.Message{
			To:      []string{recipient},
			Subject: subject,
			Body:    body,
			HTML:    html,
		})
		if err != nil {
			log.Printf("[Notify] Email to %s failed: %v", recipient, err)
		}
		summary.record(recipient, err)
	}

	return summary
}

// Push broadcasts msg to every stored subscription and collects the
// outcomes keyed by subscription id
func Push(broadcaster *push.Broadcaster, msg models.PushMessage) (Summary, error) {
	var summary Summary

	subs, err := broadcaster.Subscriptions()
	if err != nil {
		return summary, err
	}

	for _, sub := range subs {
		err := broadcaster.Deliver(sub, msg)
		if err != nil {
			log.Printf("[Notify] Push to %s failed: %v", sub.ID, err)
		}
		summary.record(sub.ID, err)
	}

	return summary, nil
}
