package notifications

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
)

var (
	ErrNotOnWhatsApp     = errors.New("Number is not registered on WhatsApp")
	ErrWhatsAppNotLinked = errors.New("WhatsApp device is not linked")
	ErrWhatsAppOffline   = errors.New("WhatsApp device is not connected")
)

// whatsAppAPI is the part of *whatsmeow.Client the sender uses.
type whatsAppAPI interface {
	IsOnWhatsApp(ctx context.Context, phones []string) ([]types.IsOnWhatsAppResponse, error)
	SendMessage(ctx context.Context, to types.JID, message *waE2E.Message, extra ...whatsmeow.SendRequestExtra) (whatsmeow.SendResponse, error)
}

// WhatsAppClient sends WhatsApp messages from a linked device (whatsmeow).
// The device session is stored in <dataDir>/whatsmeow.db.
type WhatsAppClient struct {
	client *whatsmeow.Client
	api    whatsAppAPI
}

func NewWhatsAppClient(ctx context.Context, dataDir string) (*WhatsAppClient, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create whatsapp data dir: %w", err)
	}
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", dataDir), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}
	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	client := whatsmeow.NewClient(deviceStore, nil)
	return &WhatsAppClient{client: client, api: client}, nil
}

// Connect connects the device. An unpaired device logs pairing QR codes until scanned.
func (w *WhatsAppClient) Connect(ctx context.Context) error {
	if w.client.Store.ID != nil {
		if err := w.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		log.Info().Msg("whatsapp: connected")
		return nil
	}
	qrChan, _ := w.client.GetQRChannel(ctx)
	if err := w.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	for evt := range qrChan {
		if evt.Event != "code" {
			log.Info().Str("event", evt.Event).Msg("whatsapp: login event")
			continue
		}
		q, err := qrcode.New(evt.Code, qrcode.Medium)
		if err != nil {
			log.Info().Str("code", evt.Code).Msg("whatsapp: pair device with this code")
			continue
		}
		fmt.Println("\n" + q.ToSmallString(false))
		log.Info().Msg("whatsapp: scan the QR code above from Settings > Linked Devices")
	}
	return nil
}

func (w *WhatsAppClient) Disconnect() {
	if w.client != nil {
		w.client.Disconnect()
	}
}

// Ping reports whether the linked device is connected; used as a health probe.
func (w *WhatsAppClient) Ping(ctx context.Context) error {
	if w.client == nil || w.client.Store.ID == nil {
		return ErrWhatsAppNotLinked
	}
	if !w.client.IsConnected() {
		return ErrWhatsAppOffline
	}
	return nil
}

func (w *WhatsAppClient) SendMessage(ctx context.Context, msg Message) (string, error) {
	phone := NormalizePhoneNumber(msg.To)
	if phone == "" {
		return "", ErrEmptyRecipient
	}
	resp, err := w.api.IsOnWhatsApp(ctx, []string{"+" + phone})
	if err != nil {
		return "", fmt.Errorf("failed to verify number on WhatsApp: %w", err)
	}
	jid := types.NewJID(phone, types.DefaultUserServer)
	if len(resp) > 0 {
		if !resp[0].IsIn {
			return "", fmt.Errorf("%w: %s", ErrNotOnWhatsApp, phone)
		}
		jid = resp[0].JID
	}
	body := msg.Body
	sent, err := w.api.SendMessage(ctx, jid, &waE2E.Message{Conversation: &body})
	if err != nil {
		return "", fmt.Errorf("failed to send message: %w", err)
	}
	return sent.ID, nil
}

// NormalizePhoneNumber reduces a phone number to its international digits ("+34 600-11 22 33" -> "34600112233").
// A leading 00 international prefix is dropped.
func NormalizePhoneNumber(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	return strings.TrimPrefix(digits, "00")
}
