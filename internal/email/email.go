package email

import (
	"context"

	"github.com/Domenick1991/flightbook/internal/kafka"
	"go.uber.org/zap"
)

// Sender delivers booking notifications to customers. The current
// implementation logs the notification instead of talking to an SMTP
// relay.
type Sender struct {
	log *zap.SugaredLogger
}

func NewSender(log *zap.SugaredLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	s.log.Infow("send email",
		"to", event.CustomerEmail,
		"event", event.Type,
		"booking_id", event.BookingID,
		"flight_id", event.FlightID,
	)
	return nil
}
