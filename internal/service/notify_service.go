package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"smartparking/internal/config"
	"smartparking/internal/entities"
	"smartparking/internal/repository"
	"smartparking/internal/templates"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type EmailSender interface {
	SendEmail(toEmail, toName, subject, plainText, html string) error
}

type SMSSender interface {
	SendSMS(toNumber, body string) error
}

type SendGridSender struct {
	cfg config.SendGridConfig
}

func NewSendGridSender(cfg config.SendGridConfig) *SendGridSender {
	return &SendGridSender{cfg: cfg}
}

func (s *SendGridSender) SendEmail(toEmail, toName, subject, plainText, html string) error {
	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, html)

	response, err := sendgrid.NewSendClient(s.cfg.APIKey).Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(cfg config.TwilioConfig) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.AccountSID,
		Password:   cfg.AuthToken,
		AccountSid: cfg.AccountSID,
	})
	return &TwilioSender{client: client, from: cfg.FromNumber}
}

func (s *TwilioSender) SendSMS(toNumber, body string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s: %w", toNumber, err)
	}
	return nil
}

// NotifyService sends booking confirmations by e-mail and SMS. A nil sender
// disables its channel.
type NotifyService struct {
	auth  repository.AuthRepository
	email EmailSender
	sms   SMSSender
	tmpl  *template.Template
	loc   *time.Location
	log   *zap.Logger
}

func NewNotifyService(auth repository.AuthRepository, email EmailSender, sms SMSSender, loc *time.Location, log *zap.Logger) (*NotifyService, error) {
	tmpl, err := template.ParseFS(templates.FS, "booking_email.html")
	if err != nil {
		return nil, fmt.Errorf("parse booking email template: %w", err)
	}
	if email == nil {
		log.Warn("SendGrid is not configured, booking e-mails are disabled")
	}
	if sms == nil {
		log.Warn("Twilio is not configured, booking SMS are disabled")
	}
	return &NotifyService{auth: auth, email: email, sms: sms, tmpl: tmpl, loc: loc, log: log}, nil
}

func (s *NotifyService) BookingCreated(ctx context.Context, token string, lot entities.ParkingLot, booking entities.Booking) {
	if s.email == nil && s.sms == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	user, err := s.auth.Me(ctx, token)
	if err != nil {
		s.log.Warn("booking notification skipped: cannot load user", zap.Int("booking_id", booking.ID), zap.Error(err))
		return
	}

	data := s.emailData(user, lot, booking)

	if s.email != nil && user.Email != "" {
		subject, plain := bookingEmailText(data)
		var html bytes.Buffer
		if err := s.tmpl.Execute(&html, data); err != nil {
			s.log.Error("failed to render booking email", zap.Int("booking_id", booking.ID), zap.Error(err))
		} else if err := s.email.SendEmail(user.Email, user.FullName, subject, plain, html.String()); err != nil {
			s.log.Error("failed to send booking email", zap.Int("booking_id", booking.ID), zap.Error(err))
		}
	}

	if s.sms != nil && user.PhoneNumber != "" {
		if !strings.HasPrefix(user.PhoneNumber, "+") {
			s.log.Warn("phone number is not E.164, SMS may fail", zap.String("phone", user.PhoneNumber))
		}
		if err := s.sms.SendSMS(user.PhoneNumber, bookingSMSText(data)); err != nil {
			s.log.Error("failed to send booking SMS", zap.Int("booking_id", booking.ID), zap.Error(err))
		}
	}
}

func (s *NotifyService) emailData(user *entities.User, lot entities.ParkingLot, b entities.Booking) entities.BookingEmailData {
	data := entities.BookingEmailData{
		UserName:           user.FullName,
		BookingID:          b.ID,
		LotName:            lot.Name,
		LotAddress:         lot.Address,
		VehicleNumber:      b.VehicleNumber,
		VehicleType:        b.VehicleType,
		StartTimeFormatted: b.StartTime.In(s.loc).Format("02 Jan 2006 15:04 MST"),
		TotalPrice:         fmt.Sprintf("₹%.2f", b.TotalPrice),
		CurrentYear:        time.Now().In(s.loc).Year(),
	}
	if data.UserName == "" {
		data.UserName = user.Email
	}
	if b.EndTime != nil {
		data.EndTimeFormatted = b.EndTime.In(s.loc).Format("02 Jan 2006 15:04 MST")
	}
	return data
}

func bookingEmailText(d entities.BookingEmailData) (subject, body string) {
	subject = fmt.Sprintf("Your Smart Parking booking #%d at %s", d.BookingID, d.LotName)
	body = fmt.Sprintf(
		"Hello %s,\n\nYour booking at %s is confirmed.\n\n"+
			"Booking details:\n"+
			"Booking: #%d\n"+
			"Address: %s\n"+
			"Vehicle: %s (%s)\n"+
			"Start: %s\n"+
			"End: %s\n"+
			"Total: %s\n\n"+
			"Thank you for choosing Smart Parking.",
		d.UserName, d.LotName, d.BookingID, d.LotAddress, d.VehicleNumber, d.VehicleType,
		d.StartTimeFormatted, d.EndTimeFormatted, d.TotalPrice,
	)
	return subject, body
}

func bookingSMSText(d entities.BookingEmailData) string {
	return fmt.Sprintf("Smart Parking: booking #%d at %s confirmed.\nStart: %s.\nMore details in your email.",
		d.BookingID, d.LotName, d.StartTimeFormatted)
}
