// Package telegram implements the relay storage client: files and messages
// are pushed to a Telegram chat through the Bot API, and previously uploaded
// files are fetched back through the bot file endpoint.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultAPIBase  = "https://api.telegram.org"
	messageLinkBase = "https://t.me"

	sendTimeout  = 30 * time.Second
	fetchTimeout = 15 * time.Second
)

// APIError is a failure reported by the Telegram Bot API. The platform's own
// description is preserved so callers can surface it.
type APIError struct {
	Method      string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s failed: %s", e.Method, e.Description)
}

// Client talks to the Telegram Bot API for a single bot and destination chat.
// It is stateless apart from this immutable configuration and is safe for
// concurrent use.
type Client struct {
	chatID   string
	apiBase  string // https://api.telegram.org/bot{token}
	fileBase string // https://api.telegram.org/file/bot{token}

	sendClient  *http.Client
	fetchClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the Bot API host, e.g. to point at a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.apiBase = base + "/bot"
		c.fileBase = base + "/file/bot"
	}
}

// WithHTTPClient overrides both HTTP clients (and their timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.sendClient = hc
		c.fetchClient = hc
	}
}

// NewClient creates a Client for the given bot token and destination chat id.
func NewClient(botToken, chatID string, opts ...Option) *Client {
	c := &Client{
		chatID:      chatID,
		apiBase:     defaultAPIBase + "/bot",
		fileBase:    defaultAPIBase + "/file/bot",
		sendClient:  &http.Client{Timeout: sendTimeout},
		fetchClient: &http.Client{Timeout: fetchTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.apiBase += botToken
	c.fileBase += botToken
	return c
}

// apiResponse is the Bot API envelope common to all methods.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

type photoSize struct {
	FileID string `json:"file_id"`
}

type fileRef struct {
	FileID string `json:"file_id"`
}

// messageResult is the subset of a Telegram message we consume. Exactly one
// of Photo/Video/Document is populated depending on the send method.
type messageResult struct {
	MessageID int64       `json:"message_id"`
	Photo     []photoSize `json:"photo"`
	Video     *fileRef    `json:"video"`
	Document  *fileRef    `json:"document"`
}

// SendResult is the outcome of a successful file upload to the chat.
type SendResult struct {
	MessageID int64
	FileID    string // empty when the platform returned no usable file id
	Kind      Kind
}

// MessageResult is the outcome of a successful text message send.
type MessageResult struct {
	MessageID int64
	URL       string // permalink to the message in the chat
}

// SendFile uploads payload as a photo, video, or document depending on the
// filename's extension, and returns the resulting message id and file id.
// Deriving a fetchable URL from the file id is the caller's concern.
func (c *Client) SendFile(ctx context.Context, payload []byte, filename string) (*SendResult, error) {
	kind := Classify(filename)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("chat_id", c.chatID); err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	fw, err := mw.CreateFormFile(kind.fieldName(), filename)
	if err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := fw.Write(payload); err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart form: %w", err)
	}

	method := kind.sendMethod()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/"+method, &body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var msg messageResult
	if err := c.call(c.sendClient, req, method, &msg); err != nil {
		return nil, err
	}

	return &SendResult{
		MessageID: msg.MessageID,
		FileID:    extractFileID(&msg, kind),
		Kind:      kind,
	}, nil
}

// extractFileID pulls the type-specific file id out of a message. Photos come
// back as a size-ordered thumbnail list; the last entry is the full
// resolution one.
func extractFileID(msg *messageResult, kind Kind) string {
	switch kind {
	case KindPhoto:
		if len(msg.Photo) > 0 {
			return msg.Photo[len(msg.Photo)-1].FileID
		}
	case KindVideo:
		if msg.Video != nil {
			return msg.Video.FileID
		}
	default:
		if msg.Document != nil {
			return msg.Document.FileID
		}
	}
	return ""
}

// SendMessage sends HTML-formatted text to the chat and returns the message
// id and its permalink.
func (c *Client) SendMessage(ctx context.Context, text string) (*MessageResult, error) {
	payload := map[string]string{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	var msg messageResult
	if err := c.postJSON(ctx, "sendMessage", payload, &msg); err != nil {
		return nil, err
	}
	return &MessageResult{
		MessageID: msg.MessageID,
		URL:       c.MessageLink(msg.MessageID),
	}, nil
}

// GetFile resolves a file id to the platform-internal file path used by the
// bot file endpoint.
func (c *Client) GetFile(ctx context.Context, fileID string) (string, error) {
	var result struct {
		FilePath string `json:"file_path"`
	}
	if err := c.postJSON(ctx, "getFile", map[string]string{"file_id": fileID}, &result); err != nil {
		return "", err
	}
	return result.FilePath, nil
}

// FetchFile downloads the raw bytes behind a file path via the bot file
// endpoint. Returns the payload and the upstream content type. The URL embeds
// the bot credential, so this is the only way the rest of the service touches
// stored file bytes.
func (c *Client) FetchFile(ctx context.Context, filePath string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileBase+"/"+filePath, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build file request: %w", err)
	}
	resp, err := c.fetchClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch file %q: %w", filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch file %q: upstream status %d", filePath, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read file %q: %w", filePath, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// MessageLink returns the permalink to a message in the destination chat.
func (c *Client) MessageLink(messageID int64) string {
	return fmt.Sprintf("%s/c/%s/%d", messageLinkBase, c.chatID, messageID)
}

// ProxyURL builds the locally-routable URL that serves filePath through the
// streaming proxy. requestOrigin is the URL of the request being answered; if
// it cannot be parsed the returned URL is origin-relative.
func ProxyURL(requestOrigin, filePath string) string {
	base := ""
	if u, err := url.Parse(requestOrigin); err == nil && u.Scheme != "" && u.Host != "" {
		base = u.Scheme + "://" + u.Host
	}
	return base + "/images/proxy?path=" + filePath
}

// postJSON calls a JSON-bodied Bot API method and decodes its result.
func (c *Client) postJSON(ctx context.Context, method string, payload any, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/"+method, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.call(c.fetchClient, req, method, result)
}

// call executes an API request and unmarshals the envelope. A response with
// ok=false becomes an *APIError carrying the platform's description.
func (c *Client) call(hc *http.Client, req *http.Request, method string, result any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var env apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !env.OK {
		return &APIError{Method: method, Description: env.Description}
	}
	if result != nil {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}
