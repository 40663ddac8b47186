package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"sweatshares/internal/util"
)

// jwks-to-pem prints the Supabase signing key as PEM so it can be used as
// SUPABASE_JWT_SECRET for projects on asymmetric JWT keys.
func main() {
	supabaseURL := flag.String("supabase-url", envOr("SUPABASE_URL", "http://127.0.0.1:54321"), "Supabase project URL")
	flag.Parse()

	url := strings.TrimRight(*supabaseURL, "/") + "/auth/v1/.well-known/jwks.json"
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching JWKS: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Unexpected status fetching %s: %s\n", url, resp.Status)
		os.Exit(1)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading response: %v\n", err)
		os.Exit(1)
	}

	var jwks util.JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JWKS: %v\n", err)
		os.Exit(1)
	}

	key, err := jwks.SigningKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	pemBytes, err := key.PublicKeyPEM()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error converting %s key %s: %v\n", key.Kty, key.Kid, err)
		os.Exit(1)
	}
	fmt.Print(string(pemBytes))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
