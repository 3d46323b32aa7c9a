// Package gmail reads recent messages from a Gmail mailbox and turns them into job candidates.
package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// DefaultUser is the authenticated mailbox.
const DefaultUser = "me"

// Message is a mailbox message reduced to plain text.
type Message struct {
	ID      string
	Snippet string
	Text    string
}

// Client lists and reads messages through the Gmail API.
type Client struct {
	svc  *gmailapi.Service
	user string
}

// NewClient builds a read-only client from an OAuth client credentials file and a saved token.
func NewClient(ctx context.Context, credentialsFile, tokenFile string) (*Client, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail credentials %s: %w", credentialsFile, err)
	}
	cfg, err := google.ConfigFromJSON(creds, gmailapi.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gmail credentials: %w", err)
	}
	tok, err := loadToken(tokenFile)
	if err != nil {
		return nil, err
	}
	svc, err := gmailapi.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return NewClientWithService(svc), nil
}

// NewClientWithService wraps an existing service.
func NewClientWithService(svc *gmailapi.Service) *Client {
	return &Client{svc: svc, user: DefaultUser}
}

func loadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail token %s: %w", path, err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse gmail token: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, fmt.Errorf("gmail token %s has neither access nor refresh token", path)
	}
	return &tok, nil
}

// ListRecent returns up to limit of the newest messages with their bodies as text.
func (c *Client) ListRecent(ctx context.Context, limit int64) ([]Message, error) {
	list, err := c.svc.Users.Messages.List(c.user).MaxResults(limit).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list gmail messages: %w", err)
	}

	out := make([]Message, 0, len(list.Messages))
	for _, ref := range list.Messages {
		if ref.Id == "" {
			continue
		}
		msg, err := c.svc.Users.Messages.Get(c.user, ref.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to get gmail message %s: %w", ref.Id, err)
		}
		out = append(out, Message{ID: msg.Id, Snippet: msg.Snippet, Text: MessageText(msg)})
	}
	return out, nil
}
