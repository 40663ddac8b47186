package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const base64Prefix = "base64-"

type supabaseSession struct {
	AccessToken string `json:"access_token"`
}

// AccessTokenFromCookies returns the Supabase access token stored in the
// session cookie named base. The cookie may be split into chunks named
// base.0, base.1, ... and its value may be a "base64-" prefixed JSON session,
// a URI-encoded JSON session, or the legacy bare token.
func AccessTokenFromCookies(r *http.Request, base string) string {
	raw := joinCookieChunks(r, base)
	if raw == "" {
		return ""
	}

	// supabase-js URI-encodes JSON cookie values.
	if strings.Contains(raw, "%") {
		unescaped, err := url.QueryUnescape(raw)
		if err != nil {
			return ""
		}
		raw = unescaped
	}

	if strings.HasPrefix(raw, base64Prefix) {
		decoded, err := decodeBase64(strings.TrimPrefix(raw, base64Prefix))
		if err != nil {
			return ""
		}
		raw = string(decoded)
	}

	if strings.HasPrefix(raw, "{") {
		var s supabaseSession
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return ""
		}
		return s.AccessToken
	}
	if strings.HasPrefix(raw, "[") {
		// Older auth-helpers stored [access_token, refresh_token, ...].
		var parts []*string
		if err := json.Unmarshal([]byte(raw), &parts); err != nil || len(parts) == 0 || parts[0] == nil {
			return ""
		}
		return *parts[0]
	}
	return raw
}

func joinCookieChunks(r *http.Request, base string) string {
	if c, err := r.Cookie(base); err == nil && c.Value != "" {
		return c.Value
	}

	type chunk struct {
		idx   int
		value string
	}
	var chunks []chunk
	for _, c := range r.Cookies() {
		suffix, ok := strings.CutPrefix(c.Name, base+".")
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(suffix)
		if err != nil || idx < 0 {
			continue
		}
		chunks = append(chunks, chunk{idx: idx, value: c.Value})
	}
	if len(chunks) == 0 {
		return ""
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].idx < chunks[j].idx })

	var b strings.Builder
	for i, c := range chunks {
		// A gap means a chunk went missing; the session cannot be trusted.
		if c.idx != i {
			return ""
		}
		b.WriteString(c.value)
	}
	return b.String()
}

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "=")); err == nil {
		return b, nil
	}
	return base64.StdEncoding.DecodeString(s)
}
