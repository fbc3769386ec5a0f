package notification

import (
	"FeastForBeasts/domain"
	"FeastForBeasts/entities"
	"context"
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2/log"
)

type (
	// Notifier tells a donor about progress on their donations and rewards. Delivery is best
	// effort: failures are logged and never fail the operation that triggered them.
	Notifier interface {
		NgoAssigned(ctx context.Context, donation entities.Donation)
		DonationDelivered(ctx context.Context, donation entities.Donation, points int)
		RewardRedeemed(ctx context.Context, userID string, reward domain.Reward)
	}

	ContactLookup interface {
		GetContact(ctx context.Context, userID string) (domain.Profile, error)
	}

	Sender interface {
		Send(toEmail string, subject string, body string) error
	}

	mailNotifier struct {
		contacts ContactLookup
		sender   Sender
	}

	NopNotifier struct{}
)

func NewMailNotifier(contacts ContactLookup, sender Sender) Notifier {
	return &mailNotifier{
		contacts: contacts,
		sender:   sender,
	}
}

func (n *mailNotifier) NgoAssigned(ctx context.Context, donation entities.Donation) {
	subject := "Your donation has been matched"
	body := fmt.Sprintf(
		"<p>Good news! Your %s donation (%s %s) will go to <b>%s</b>.</p><p>Pickup: %s</p>",
		html.EscapeString(donation.FoodType),
		donation.Quantity.String(),
		html.EscapeString(donation.QuantityUnit),
		html.EscapeString(donation.AssignedNgoName),
		html.EscapeString(donation.PickupLocation),
	)
	n.send(ctx, donation.UserID, subject, body)
}

func (n *mailNotifier) DonationDelivered(ctx context.Context, donation entities.Donation, points int) {
	subject := "Your donation was delivered"
	body := fmt.Sprintf(
		"<p>Your donation reached %s. Thank you!</p><p>You earned <b>%d points</b>.</p>",
		html.EscapeString(donation.AssignedNgoName),
		points,
	)
	n.send(ctx, donation.UserID, subject, body)
}

func (n *mailNotifier) RewardRedeemed(ctx context.Context, userID string, reward domain.Reward) {
	subject := "Reward redeemed: " + reward.Name
	body := fmt.Sprintf(
		"<p>%s</p><p>%s</p><p>Points spent: %d</p>",
		html.EscapeString(reward.Name),
		html.EscapeString(reward.Description),
		reward.PointsRequired,
	)
	n.send(ctx, userID, subject, body)
}

func (n *mailNotifier) send(ctx context.Context, userID, subject, body string) {
	contact, err := n.contacts.GetContact(ctx, userID)
	if err != nil {
		log.Warnw("notification skipped: contact lookup failed", "user_id", userID, "error", err)
		return
	}
	if contact.Email == "" {
		return
	}

	greeting := fmt.Sprintf("<p>Hi %s,</p>", html.EscapeString(contact.Name))
	if err := n.sender.Send(contact.Email, subject, greeting+body); err != nil {
		log.Warnw("notification failed", "user_id", userID, "subject", subject, "error", err)
	}
}

func (NopNotifier) NgoAssigned(context.Context, entities.Donation)            {}
func (NopNotifier) DonationDelivered(context.Context, entities.Donation, int) {}
func (NopNotifier) RewardRedeemed(context.Context, string, domain.Reward)     {}
