package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	gmailSendScope = "https://www.googleapis.com/auth/gmail.send"
	gmailSendURL   = "https://gmail.googleapis.com/gmail/v1/users/me/messages/send"
)

// Gmail sends mail through the Gmail REST API. The OAuth token and its
// refresh cycle are owned entirely by the underlying TokenSource; callers
// only see Send.
type Gmail struct {
	from   string
	client *http.Client
}

// NewGmail builds a Gmail sender from an OAuth client credentials file and a
// previously issued token file (the offline-consent flow that produces the
// token happens outside this process).
func NewGmail(ctx context.Context, credentialsPath, tokenPath, from string) (*Gmail, error) {
	raw, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading gmail credentials: %w", err)
	}

	cfg, err := google.ConfigFromJSON(raw, gmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parsing gmail credentials: %w", err)
	}

	tok, err := readToken(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("reading gmail token: %w", err)
	}

	return &Gmail{
		from:   from,
		client: oauth2.NewClient(ctx, cfg.TokenSource(ctx, tok)),
	}, nil
}

// Send delivers one HTML message. The request is cancellable through ctx;
// a non-2xx API response is a retryable failure.
func (g *Gmail) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		g.from, to, subject, htmlBody,
	)

	body, err := json.Marshal(map[string]string{
		"raw": base64.URLEncoding.EncodeToString([]byte(msg)),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gmailSendURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gmail send failed: %s: %s", resp.Status, detail)
	}
	return nil
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}
