package email

import (
	"context"
	"log"

	"github.com/Abhijith12371/InfosysProject/internal/kafka"
)

// Sender is a stand-in for a real mail integration: it logs what would be
// sent for each booking lifecycle event.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	to := event.PassengerEmail
	if to == "" {
		to = "user " + event.UserID
	}
	switch event.Type {
	case kafka.EventBookingConfirmed:
		log.Printf("email to %s: booking %s confirmed, PNR %s", to, event.BookingID, event.PNR)
	case kafka.EventBookingCancelled:
		log.Printf("email to %s: booking %s cancelled, refund %d cents", to, event.BookingID, event.RefundCents)
	default:
		log.Printf("email to %s: booking %s is now %s", to, event.BookingID, event.Status)
	}
	return nil
}
