package whatsapp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mamadbah2/poultry/internal/config"
	"github.com/mamadbah2/poultry/internal/domain/models"
	"github.com/mamadbah2/poultry/internal/service/commands"
	client "github.com/mamadbah2/poultry/pkg/clients/whatsapp"
)

type recordingClient struct {
	sent []client.SendTextMessageRequest
	err  error
}

func (c *recordingClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	c.sent = append(c.sent, req)
	return &client.SendTextMessageResponse{}, c.err
}

type stubDispatcher struct {
	got   []models.Command
	reply string
	err   error
}

func (d *stubDispatcher) HandleCommand(_ context.Context, cmd models.Command, _ string) (string, error) {
	d.got = append(d.got, cmd)
	return d.reply, d.err
}

type stubTranslator struct {
	out string
	err error
}

func (t stubTranslator) TranslateToCommand(context.Context, string) (string, error) {
	return t.out, t.err
}

func textPayload(from string, bodies ...string) models.WebhookPayload {
	msgs := make([]models.InboundMessage, 0, len(bodies))
	for i, b := range bodies {
		msgs = append(msgs, models.InboundMessage{From: from, ID: string(rune('a' + i)), Type: "text", Text: &models.TextContent{Body: b}})
	}
	return models.WebhookPayload{Entry: []models.WebhookEntry{{Changes: []models.WebhookChange{{Value: models.WebhookValue{Messages: msgs}}}}}}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{VerifyToken: "tok"}, &recordingClient{}, &stubDispatcher{}, nil, nil)

	got, err := svc.VerifyWebhookToken("subscribe", "tok", "42")
	if err != nil || got != "42" {
		t.Fatalf("expected challenge echo, got %q err=%v", got, err)
	}
	if _, err := svc.VerifyWebhookToken("subscribe", "wrong", "42"); err == nil {
		t.Fatal("expected invalid token error")
	}
	if _, err := svc.VerifyWebhookToken("unsubscribe", "tok", "42"); err == nil {
		t.Fatal("expected mode error")
	}
}

func TestHandleWebhook_DispatchesAndReplies(t *testing.T) {
	wa := &recordingClient{}
	disp := &stubDispatcher{reply: "saved"}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, disp, nil, nil)

	if err := svc.HandleWebhook(context.Background(), textPayload("2246", "/eggs 30 Sussex")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(disp.got) != 1 || disp.got[0].Type != models.CommandEggs {
		t.Fatalf("unexpected dispatched commands %+v", disp.got)
	}
	if len(wa.sent) != 1 || wa.sent[0].To != "2246" || wa.sent[0].Body != "saved" {
		t.Fatalf("unexpected replies %+v", wa.sent)
	}
}

func TestHandleWebhook_TranslatesFreeText(t *testing.T) {
	wa := &recordingClient{}
	disp := &stubDispatcher{reply: "ok"}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, disp, stubTranslator{out: "/soldeggs 60 Sussex"}, nil)

	if err := svc.HandleWebhook(context.Background(), textPayload("2246", "j'ai vendu 2 plateaux")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if disp.got[0].Type != models.CommandSoldEggs || strings.Join(disp.got[0].Args, " ") != "60 Sussex" {
		t.Fatalf("unexpected translated command %+v", disp.got[0])
	}
}

func TestHandleWebhook_InvalidArgumentsGetHelp(t *testing.T) {
	wa := &recordingClient{}
	disp := &stubDispatcher{err: commands.ErrInvalidArguments}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, disp, nil, nil)

	if err := svc.HandleWebhook(context.Background(), textPayload("2246", "/eggs many")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(wa.sent) != 1 || !strings.Contains(wa.sent[0].Body, "Supported commands") {
		t.Fatalf("expected help reply, got %+v", wa.sent)
	}
}

func TestHandleWebhook_ReturnsFirstErrorButHandlesAll(t *testing.T) {
	wa := &recordingClient{}
	storageErr := errors.New("disk full")
	disp := &stubDispatcher{err: storageErr}
	svc := NewMetaWhatsAppService(config.WhatsAppConfig{}, wa, disp, nil, nil)

	err := svc.HandleWebhook(context.Background(), textPayload("2246", "/eggs 1 a", "", "/eggs 2 b"))
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if len(disp.got) != 2 {
		t.Fatalf("expected both non-empty messages dispatched, got %d", len(disp.got))
	}
	if len(wa.sent) != 2 {
		t.Fatalf("expected a failure notice per dispatched message, got %d", len(wa.sent))
	}
}
