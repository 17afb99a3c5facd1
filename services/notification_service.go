// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"otticapro-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier is the delivery collaborator: the engine decides, the notifier
// carries the message. Implementations must not be required for the
// decision logic to run.
type Notifier interface {
	NotifyCallback(call models.FollowUpCall, customer models.Customer) error
}

// TwilioNotifier texts the staff phone when a richiamami callback comes due.
type TwilioNotifier struct {
	client     *twilio.RestClient
	from       string
	staffPhone string
}

func NewTwilioNotifier() *TwilioNotifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from:       os.Getenv("TWILIO_PHONE_NUMBER"),
		staffPhone: os.Getenv("STAFF_PHONE_NUMBER"),
	}
}

func (n *TwilioNotifier) NotifyCallback(call models.FollowUpCall, customer models.Customer) error {
	body := fmt.Sprintf("Richiamare oggi %s %s (%s), priorita %s",
		customer.Nome, customer.Cognome, customer.Phone, call.Priorita)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(n.staffPhone)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		log.Printf("Callback reminder sent for call %s, SID: %s", call.ID, *resp.Sid)
	} else {
		log.Printf("Callback reminder sent for call %s, but no SID returned", call.ID)
	}
	return nil
}

// NoopNotifier is used when Twilio credentials are not configured.
type NoopNotifier struct{}

func (NoopNotifier) NotifyCallback(call models.FollowUpCall, customer models.Customer) error {
	log.Printf("SMS disabled, skipping callback reminder for call %s", call.ID)
	return nil
}
