// Package telegram provides a client for sending run notifications via the
// Telegram Bot API. It formats a batch run summary into a human-readable
// message and handles delivery with retry logic for reliability.
package telegram

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/veralens/creatorscope/internal/models"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendSummary sends a run summary notification
func (c *Client) SendSummary(summary *models.RunSummary) error {
	message := c.formatMessage(summary)

	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2" // Use MarkdownV2 for better escaping support

	// Send with retry
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatMessage formats a run summary into a Telegram message
func (c *Client) formatMessage(summary *models.RunSummary) string {
	message := "📊 *Creator Analysis Run Complete*\n\n"
	message += fmt.Sprintf("🆔 Run: %s\n", escapeMarkdownV2(summary.RunID))
	message += fmt.Sprintf("👥 Creators: %d\n", summary.TotalCreators)
	message += fmt.Sprintf("✅ Successful: %d\n", summary.Successful)
	message += fmt.Sprintf("⏭ Skipped: %d\n", summary.Skipped)
	message += fmt.Sprintf("❌ Errors: %d\n", summary.Errors)

	rateStr := escapeMarkdownV2(fmt.Sprintf("%.1f%%", summary.SuccessRate()))
	message += fmt.Sprintf("📈 Success rate: *%s*\n", rateStr)
	message += fmt.Sprintf("🇺🇸 USA: %d / 🌍 Global: %d\n", summary.USACreators, summary.GlobalCreators)
	message += fmt.Sprintf("⏱ Elapsed: %s\n", escapeMarkdownV2(formatDuration(summary.Elapsed)))

	if len(summary.SizeDistribution) > 0 {
		message += "\n*Creator sizes*\n"
		tiers := make([]string, 0, len(summary.SizeDistribution))
		for tier := range summary.SizeDistribution {
			tiers = append(tiers, tier)
		}
		sort.Strings(tiers)
		for _, tier := range tiers {
			message += fmt.Sprintf("  %s: %d\n", escapeMarkdownV2(tier), summary.SizeDistribution[tier])
		}
	}

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d >= time.Hour {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
	if d >= time.Minute {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
