package dropboxsign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sweatshares/internal/metrics"

	"github.com/rs/zerolog"
)

// Quotas are the remaining allowances on the account. Dropbox Sign reports
// null for unlimited allowances.
type Quotas struct {
	APISignatureRequestsLeft int  `json:"api_signature_requests_left"`
	DocumentsLeft            *int `json:"documents_left"`
	TemplatesLeft            *int `json:"templates_left"`
	SMSVerificationsLeft     *int `json:"sms_verifications_left"`
}

type Account struct {
	AccountID    string `json:"account_id"`
	EmailAddress string `json:"email_address"`
	IsLocked     bool   `json:"is_locked"`
	IsPaidHS     bool   `json:"is_paid_hs"`
	IsPaidHF     bool   `json:"is_paid_hf"`
	CallbackURL  string `json:"callback_url"`
	RoleCode     string `json:"role_code"`
	Quotas       Quotas `json:"quotas"`
}

// IsPaid reports whether either Dropbox Sign product is on a paid plan.
func (a *Account) IsPaid() bool {
	return a.IsPaidHS || a.IsPaidHF
}

// APIError is the error envelope returned by the Dropbox Sign API.
type APIError struct {
	StatusCode int
	Name       string `json:"error_name"`
	Msg        string `json:"error_msg"`
}

func (e *APIError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("dropbox sign returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("dropbox sign %s: %s", e.Name, e.Msg)
}

var ErrMissingAPIKey = errors.New("dropbox sign api key is not configured")

type Client interface {
	GetAccount(ctx context.Context) (*Account, error)
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger zerolog.Logger) Client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("service", "DropboxSignClient").Logger(),
	}
}

func (c *client) GetAccount(ctx context.Context) (*Account, error) {
	var out struct {
		Account Account `json:"account"`
	}
	if err := c.get(ctx, "/account", &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

func (c *client) get(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	// The API key is the basic auth user name with an empty password.
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ProviderRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("calling dropbox sign %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("reading dropbox sign response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error *APIError `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
			apiErr.Name = envelope.Error.Name
			apiErr.Msg = envelope.Error.Msg
		}
		c.logger.Warn().Int("status_code", resp.StatusCode).Str("path", path).Str("error_name", apiErr.Name).Msg("Dropbox Sign request failed")
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding dropbox sign response: %w", err)
	}
	return nil
}
