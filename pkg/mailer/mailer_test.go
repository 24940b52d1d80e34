package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
)

type stubSES struct {
	sendInput *ses.SendEmailInput
	rawInput  *ses.SendRawEmailInput
}

func (s *stubSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	s.sendInput = params
	return &ses.SendEmailOutput{}, nil
}

func (s *stubSES) SendRawEmail(_ context.Context, params *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	s.rawInput = params
	return &ses.SendRawEmailOutput{}, nil
}

func TestSendPlainMessage(t *testing.T) {
	stub := &stubSES{}
	m := NewSESMailerWithClient(stub, "no-reply@adbridge.io")

	err := m.Send(context.Background(), Message{
		To:      "creator@example.com",
		Subject: "Pending ad requests",
		Body:    "You have 2 pending ad requests.",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if stub.sendInput == nil {
		t.Fatal("expected SendEmail to be called")
	}
	if stub.rawInput != nil {
		t.Fatal("plain message should not use raw path")
	}
	if got := stub.sendInput.Destination.ToAddresses[0]; got != "creator@example.com" {
		t.Fatalf("unexpected destination %s", got)
	}
	if got := *stub.sendInput.Source; got != "no-reply@adbridge.io" {
		t.Fatalf("unexpected source %s", got)
	}
}

func TestSendWithAttachmentUsesRawPath(t *testing.T) {
	stub := &stubSES{}
	m := NewSESMailerWithClient(stub, "no-reply@adbridge.io")

	err := m.Send(context.Background(), Message{
		To:      "sponsor@example.com",
		Subject: "Campaign export",
		Body:    "Your CSV export is attached.",
		Attachments: []Attachment{
			{Filename: "campaigns.csv", ContentType: "text/csv", Data: []byte("id,name\n")},
		},
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if stub.rawInput == nil {
		t.Fatal("expected SendRawEmail to be called")
	}

	raw := string(stub.rawInput.RawMessage.Data)
	for _, want := range []string{
		"Subject: Campaign export",
		"multipart/mixed",
		`attachment; filename="campaigns.csv"`,
		"Content-Transfer-Encoding: base64",
	} {
		if !strings.Contains(raw, want) {
			t.Fatalf("raw message missing %q", want)
		}
	}
	if len(stub.rawInput.Destinations) != 1 || stub.rawInput.Destinations[0] != "sponsor@example.com" {
		t.Fatalf("unexpected destinations %v", stub.rawInput.Destinations)
	}
}

func TestSendRequiresRecipient(t *testing.T) {
	m := NewSESMailerWithClient(&stubSES{}, "no-reply@adbridge.io")
	if err := m.Send(context.Background(), Message{Subject: "x"}); err == nil {
		t.Fatal("expected error for empty recipient")
	}
}

func TestNoopMailerSwallowsMessages(t *testing.T) {
	m := NewNoopMailer(nil)
	if err := m.Send(context.Background(), Message{To: "a@b.c", Subject: "hi"}); err != nil {
		t.Fatalf("noop send: %v", err)
	}
}
