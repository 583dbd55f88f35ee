package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 256

	// noCommand is what the model answers when the message carries no record.
	noCommand = "NONE"
)

// ErrEmptyResponse is returned when the API answers without any content block.
var ErrEmptyResponse = errors.New("empty response from ai")

// Translator turns free-text farm messages into slash commands.
type Translator interface {
	// TranslateToCommand returns a slash command, or "" when the text holds no record.
	TranslateToCommand(ctx context.Context, input string) (string, error)
}

// Client is the resty-backed Translator.
type Client struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: client, url: apiURL, logger: logger}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const systemPrompt = `You convert messages from a poultry farmer into exactly one command.
Messages may be in French or English. Answer with the command only, on one line.

Commands:
/broilers <count> <age-weeks> <breed>       new broilers placed
/soldbroilers <count> <age-weeks> <breed>   broilers sold
/layers <count> <age-weeks> <breed>         new laying hens placed
/soldlayers <sold> <age-weeks> <breed>      laying hens sold
/eggs <count> <breed>                       eggs collected
/soldeggs <count> <breed>                   eggs sold
/damagedeggs <count> <breed>                eggs broken or damaged
/profile <type> <age-weeks> <vaccination-weeks> <feed>
/report                                     the farmer asks for a summary

Counts are whole numbers. A tray holds 30 eggs. Use "unknown" for a missing breed.
If the message does not describe any of these, answer NONE.`

// TranslateToCommand asks the model for the command matching input.
func (c *Client) TranslateToCommand(ctx context.Context, input string) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages: []message{
			{Role: "user", Content: input},
			// prefill keeps the answer on the command grammar
			{Role: "assistant", Content: "/"},
		},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(c.url)
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", ErrEmptyResponse
	}

	command := cleanCommand("/" + respBody.Content[0].Text)
	c.logger.Debug("translated free text", zap.String("input", input), zap.String("command", command))
	return command, nil
}

// cleanCommand keeps the first line of the answer and strips code fences.
func cleanCommand(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)

	if strings.EqualFold(strings.TrimPrefix(text, "/"), noCommand) || text == "/" {
		return ""
	}
	return text
}
