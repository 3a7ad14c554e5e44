package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/cloudstay/rental-service/internal/config"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/utils"
)

const bookingConfirmedEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Your booking is confirmed!</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1d6fdc; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: left; }
  .detail { margin: 4px 0; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Booking confirmed</h1>
    </div>
    <div class="content">
      <p>Hi %s,</p>
      <p>Your payment went through and your booking is confirmed.</p>
      <p class="detail"><strong>Booking ID:</strong> %s</p>
      <p class="detail"><strong>Amount paid:</strong> %.2f %s</p>
      <p>We look forward to hosting you!</p>
    </div>
    <div class="footer">
      © %d CloudStay. All rights reserved.
    </div>
  </div>
</body>
</html>`

const bookingCancelledEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 500px; margin: auto; border: 1px solid #e9ecef; border-radius: 8px; padding: 20px; }
</style>
</head>
<body>
  <div class="container">
    <p>Hi %s,</p>
    <p>Your booking %s has been cancelled. If you paid online, the refund will follow your payment provider's usual timeline.</p>
    <p>— Team CloudStay</p>
  </div>
</body>
</html>`

const enquiryReceivedEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: monospace; line-height: 1.5; }
  .container { border: 1px solid #ccc; padding: 15px; max-width: 600px; }
  h2 { margin-top: 0; }
  ul { list-style: none; padding: 0; }
  li { margin-bottom: 5px; }
</style>
</head>
<body>
  <div class="container">
    <h2>New Booking Enquiry</h2>
    <ul>
      <li><strong>Name:</strong> %s</li>
      <li><strong>Email:</strong> %s</li>
      <li><strong>Property:</strong> %s</li>
      <li><strong>Move-in:</strong> %s</li>
      <li><strong>Timestamp (UTC):</strong> %s</li>
    </ul>
  </div>
</body>
</html>`

// Notifier dispatches user-facing notifications. Delivery is best effort:
// implementations log failures and never propagate them, so a dead email
// provider cannot fail a paid booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *models.Booking)
	BookingCancelled(ctx context.Context, b *models.Booking)
	EnquiryReceived(ctx context.Context, e *models.Enquiry)
	EnquiryStatusChanged(ctx context.Context, e *models.Enquiry)
}

type notificationService struct {
	cfg            *config.Config
	sendgridClient *sendgrid.Client
	twilioClient   *twilio.RestClient
}

func NewNotificationService(cfg *config.Config) Notifier {
	s := &notificationService{
		cfg:            cfg,
		sendgridClient: sendgrid.NewSendClient(cfg.SendgridAPIKey),
	}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		s.twilioClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	return s
}

func (s *notificationService) BookingConfirmed(_ context.Context, b *models.Booking) {
	subject := "Your CloudStay booking is confirmed"
	html := fmt.Sprintf(bookingConfirmedEmailHTML,
		b.Name, b.ID.String(), b.PaymentAmount, b.Currency, time.Now().Year())
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour payment went through and booking %s is confirmed. Amount paid: %.2f %s.\n\n— Team CloudStay",
		b.Name, b.ID.String(), b.PaymentAmount, b.Currency)
	s.sendEmail(b.Email, b.Name, subject, plain, html)

	s.sendSMS(b.Phone, fmt.Sprintf(
		"CloudStay: your booking %s is confirmed. Amount paid: %.2f %s.",
		shortID(b.ID.String()), b.PaymentAmount, b.Currency))
}

func (s *notificationService) BookingCancelled(_ context.Context, b *models.Booking) {
	subject := "Your CloudStay booking was cancelled"
	html := fmt.Sprintf(bookingCancelledEmailHTML, b.Name, b.ID.String())
	plain := fmt.Sprintf("Hi %s,\n\nYour booking %s has been cancelled.\n\n— Team CloudStay",
		b.Name, b.ID.String())
	s.sendEmail(b.Email, b.Name, subject, plain, html)

	s.sendSMS(b.Phone, fmt.Sprintf("CloudStay: your booking %s was cancelled.", shortID(b.ID.String())))
}

func (s *notificationService) EnquiryReceived(_ context.Context, e *models.Enquiry) {
	if s.cfg.AdminEmail == "" {
		utils.Logger.Debug("ADMIN_EMAIL not configured; skipping enquiry notification")
		return
	}
	subject := fmt.Sprintf("[Enquiry] %s for property %s", e.Name, e.PropertyID)
	plain := fmt.Sprintf("New enquiry from %s (%s) for property %s, move-in %s.",
		e.Name, e.Email, e.PropertyID, e.MoveInDate.Format("2006-01-02"))
	html := fmt.Sprintf(enquiryReceivedEmailHTML,
		e.Name, e.Email, e.PropertyID.String(),
		e.MoveInDate.Format("2006-01-02"),
		time.Now().UTC().Format(time.RFC1123Z))
	s.sendEmail(s.cfg.AdminEmail, "CloudStay Team", subject, plain, html)
}

func (s *notificationService) EnquiryStatusChanged(_ context.Context, e *models.Enquiry) {
	subject := fmt.Sprintf("Your CloudStay enquiry was %s", e.Status)
	plain := fmt.Sprintf("Hi %s,\n\nYour enquiry for the property has been %s.\n\n— Team CloudStay",
		e.Name, e.Status)
	s.sendEmail(e.Email, e.Name, subject, plain, plain)

	s.sendSMS(e.Phone, fmt.Sprintf("CloudStay: your enquiry has been %s.", e.Status))
}

/* ---------- internals ---------- */

func (s *notificationService) sendEmail(toAddr, toName, subject, plain, html string) {
	from := mail.NewEmail(s.cfg.SendgridFromName, s.cfg.SendgridFromEmail)
	to := mail.NewEmail(toName, toAddr)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)

	if s.cfg.LDFlag_SendgridSandboxMode {
		settings := mail.NewMailSettings()
		settings.SetSandboxMode(mail.NewSetting(true))
		msg.SetMailSettings(settings)
	}

	resp, err := s.sendgridClient.Send(msg)
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send email %q to %s", subject, toAddr)
		return
	}
	if resp.StatusCode >= 400 {
		utils.Logger.Warnf("SendGrid rejected email %q to %s: status=%d", subject, toAddr, resp.StatusCode)
	}
}

func (s *notificationService) sendSMS(to, body string) {
	if s.twilioClient == nil || s.cfg.TwilioFromNumber == "" || to == "" {
		return
	}
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(body)

	if _, err := s.twilioClient.Api.CreateMessage(params); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to send SMS to %s", to)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
