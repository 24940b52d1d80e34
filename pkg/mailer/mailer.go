package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/textproto"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/lucasmedina/adbridge-backend/pkg/config"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
)

// Attachment is a file delivered alongside an email body.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a single outbound email.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Mailer delivers outbound email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SESAPI is the subset of the SES client we depend on.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	SendRawEmail(ctx context.Context, params *ses.SendRawEmailInput, optFns ...func(*ses.Options)) (*ses.SendRawEmailOutput, error)
}

// SESMailer sends email through Amazon SES.
type SESMailer struct {
	client SESAPI
	from   string
}

// NewSESMailer builds an SES-backed mailer from the ambient AWS credential chain.
func NewSESMailer(ctx context.Context, cfg config.MailConfig) (*SESMailer, error) {
	if cfg.From == "" {
		return nil, fmt.Errorf("mail from address is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(awsCfg), from: cfg.From}, nil
}

// NewSESMailerWithClient wires an existing SES client, used by tests.
func NewSESMailerWithClient(client SESAPI, from string) *SESMailer {
	return &SESMailer{client: client, from: from}
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("recipient address is required")
	}
	if len(msg.Attachments) > 0 {
		return m.sendRaw(ctx, msg)
	}

	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(msg.Body)},
			},
		},
		Source: awssdk.String(m.from),
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}

// sendRaw builds a multipart MIME message so attachments survive SES delivery.
func (m *SESMailer) sendRaw(ctx context.Context, msg Message) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", m.from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", writer.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return fmt.Errorf("create text part: %w", err)
	}
	if _, err := textPart.Write([]byte(msg.Body)); err != nil {
		return fmt.Errorf("write text part: %w", err)
	}

	for _, att := range msg.Attachments {
		header := textproto.MIMEHeader{}
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))

		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create attachment part: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(att.Data)
		if _, err := part.Write([]byte(encoded)); err != nil {
			return fmt.Errorf("write attachment part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize mime message: %w", err)
	}

	_, err = m.client.SendRawEmail(ctx, &ses.SendRawEmailInput{
		RawMessage:   &types.RawMessage{Data: buf.Bytes()},
		Source:       awssdk.String(m.from),
		Destinations: []string{msg.To},
	})
	if err != nil {
		return fmt.Errorf("ses send raw email: %w", err)
	}
	return nil
}

// NoopMailer logs instead of sending, used when delivery is disabled.
type NoopMailer struct {
	logg *logger.Logger
}

func NewNoopMailer(logg *logger.Logger) NoopMailer {
	return NoopMailer{logg: logg}
}

func (m NoopMailer) Send(ctx context.Context, msg Message) error {
	if m.logg != nil {
		m.logg.Info(m.logg.WithFields(ctx, map[string]any{
			"to":          msg.To,
			"subject":     msg.Subject,
			"attachments": len(msg.Attachments),
		}), "mail delivery disabled, dropping message")
	}
	return nil
}

// New returns the mailer implied by config: SES when enabled, a noop otherwise.
func New(ctx context.Context, cfg config.MailConfig, logg *logger.Logger) (Mailer, error) {
	if cfg.Disabled {
		return NewNoopMailer(logg), nil
	}
	return NewSESMailer(ctx, cfg)
}
