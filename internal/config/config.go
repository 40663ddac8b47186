package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	// Supabase
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	SupabaseURL        string `envconfig:"SUPABASE_URL"`
	JWTSecret          string `envconfig:"SUPABASE_JWT_SECRET" required:"true"`
	// AuthCookie is the session cookie base name. Empty means it is derived
	// from the project ref in SupabaseURL (sb-<ref>-auth-token).
	AuthCookie string `envconfig:"SUPABASE_AUTH_COOKIE"`

	// Supabase storage (S3 protocol) for message attachments
	S3URL       string `envconfig:"SUPABASE_S3_URL"`
	S3Bucket    string `envconfig:"SUPABASE_S3_BUCKET" default:"message-attachments"`
	S3Region    string `envconfig:"SUPABASE_S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"SUPABASE_S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"SUPABASE_S3_SECRET_KEY"`

	// Dropbox Sign
	DropboxSignAPIKey       string `envconfig:"DROPBOX_SIGN_API_KEY"`
	DropboxSignAPIKeySecret string `envconfig:"DROPBOX_SIGN_API_KEY_SECRET"`
	DropboxSignBaseURL      string `envconfig:"DROPBOX_SIGN_BASE_URL" default:"https://api.hellosign.com/v3"`
	DropboxSignTimeoutSec   int    `envconfig:"DROPBOX_SIGN_TIMEOUT_SEC" default:"15"`

	// Google Cloud
	GCPProjectID         string `envconfig:"GCP_PROJECT_ID"`
	GCPCredentialsFile   string `envconfig:"GCP_CREDENTIALS_FILE"`
	PubSubSignatureTopic string `envconfig:"PUBSUB_SIGNATURE_TOPIC" default:"signature-events"`
	PubSubEmulatorHost   string `envconfig:"PUBSUB_EMULATOR_HOST"`

	WebhookRateLimitRPS   float64 `envconfig:"WEBHOOK_RATE_LIMIT_RPS" default:"5"`
	WebhookRateLimitBurst int     `envconfig:"WEBHOOK_RATE_LIMIT_BURST" default:"20"`
	// TrustedProxyHops is the number of reverse proxies in front of the
	// service that append to X-Forwarded-For. Zero keys on the peer address.
	TrustedProxyHops int `envconfig:"TRUSTED_PROXY_HOPS" default:"0"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs against local infrastructure.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SessionCookieName returns the base name of the Supabase auth cookie.
func (c *Config) SessionCookieName() string {
	if c.AuthCookie != "" {
		return c.AuthCookie
	}
	ref := ProjectRef(c.SupabaseURL)
	if ref == "" {
		return "sb-auth-token"
	}
	return "sb-" + ref + "-auth-token"
}

// ProjectRef extracts the project ref from a Supabase URL such as
// https://abcd.supabase.co. Local URLs (http://127.0.0.1:54321) yield the
// host name, matching what supabase-js does for cookie names.
func ProjectRef(supabaseURL string) string {
	host := supabaseURL
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	if i := strings.IndexAny(host, "/:"); i >= 0 {
		host = host[:i]
	}
	if host == "" {
		return ""
	}
	return strings.SplitN(host, ".", 2)[0]
}
