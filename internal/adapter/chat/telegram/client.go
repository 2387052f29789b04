// Package telegram implements domain.ChatTransport over the Telegram Bot API.
package telegram

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oricho123/rentifier/internal/domain"
)

// Client wraps tgbotapi.BotAPI and implements domain.ChatTransport (§6): a
// single best-effort send per call, no inline retry — retryable failures are
// left for the notifier's next run to redrive via its dedup check.
type Client struct {
	bot *tgbotapi.BotAPI
}

func New(token string) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Client{bot: bot}, nil
}

func (c *Client) SendMessage(ctx domain.Context, chatID, text, parseMode string) domain.DeliveryResult {
	id, err := parseChatID(chatID)
	if err != nil {
		return domain.DeliveryResult{Success: false, Err: err, Retryable: false}
	}

	msg := tgbotapi.NewMessage(id, text)
	msg.ParseMode = parseMode

	sent, err := c.bot.Send(msg)
	if err != nil {
		retryable := classify(err)
		slog.Warn("telegram send message failed", slog.String("chat_id", chatID), slog.Bool("retryable", retryable), slog.Any("error", err))
		return domain.DeliveryResult{Success: false, Err: err, Retryable: retryable}
	}
	return domain.DeliveryResult{Success: true, MessageID: strconv.Itoa(sent.MessageID)}
}

func (c *Client) SendPhoto(ctx domain.Context, chatID, photoURL, caption, parseMode string) domain.DeliveryResult {
	id, err := parseChatID(chatID)
	if err != nil {
		return domain.DeliveryResult{Success: false, Err: err, Retryable: false}
	}

	photo := tgbotapi.NewPhoto(id, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = parseMode

	sent, err := c.bot.Send(photo)
	if err != nil {
		retryable := classify(err)
		slog.Warn("telegram send photo failed", slog.String("chat_id", chatID), slog.Bool("retryable", retryable), slog.Any("error", err))
		return domain.DeliveryResult{Success: false, Err: err, Retryable: retryable, ImageAvailable: false}
	}
	return domain.DeliveryResult{Success: true, MessageID: strconv.Itoa(sent.MessageID), ImageAvailable: true}
}

func parseChatID(chatID string) (int64, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("op=telegram.parseChatID: invalid chat id %q: %w", chatID, err)
	}
	return id, nil
}

// classify maps a tgbotapi/network error onto §6's retryable table: 429,
// 502, 503, 504, and network errors are retryable; 400 and other 4xx are not.
func classify(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 502, 503, 504:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}

	// Unrecognized error shape: treat as retryable rather than silently
	// dropping a notification that might succeed on the next run.
	return true
}
