package doctor

import (
	"net/url"
	"slices"
	"strings"
)

// secretKeyParts mark a config key as sensitive when found anywhere in its
// upper-cased name.
var secretKeyParts = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// tokenPrefixes mark a value as a credential whatever key holds it. These
// are the providers that show up in assistant settings and MCP server env.
var tokenPrefixes = []string{
	"sk-",  // OpenAI, Anthropic (sk-ant-), OpenRouter (sk-or-)
	"AIza", // Google API keys, used by Gemini
	"ghp_", "gho_", "ghu_", "ghs_", "ghr_", "github_pat_",
	"glpat-",
	"xoxb-", "xoxp-",
	"AKIA", // AWS access key ID
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskURL redacts credentials from URLs.
// URLs with embedded credentials (user:pass@host) become (user:****@host).
// If the URL cannot be parsed, it is returned unchanged.
func MaskURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	// No user info, nothing to mask
	if parsed.User == nil {
		return rawURL
	}

	password, hasPassword := parsed.User.Password()
	if !hasPassword || password == "" {
		return rawURL
	}

	// Create new URL with masked password
	maskedPassword := MaskValue(password)
	parsed.User = url.UserPassword(parsed.User.Username(), maskedPassword)

	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
// Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range secretKeyParts {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token prefix.
// This catches cases where the key name doesn't indicate sensitivity but the value
// is clearly a token (e.g., "MY_VAR=ghp_abc123").
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range tokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskConfig returns a deep copy of a decoded config with secret-looking
// values masked. String values under secret-looking keys, token-like strings
// and URL credentials are redacted; other values are copied as is.
func MaskConfig(cfg map[string]any) map[string]any {
	if cfg == nil {
		return nil
	}
	out := make(map[string]any, len(cfg))
	for k, v := range cfg {
		out[k] = maskValue(k, v)
	}
	return out
}

func maskValue(key string, v any) any {
	switch t := v.(type) {
	case map[string]any:
		return MaskConfig(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = maskValue(key, e)
		}
		return out
	case string:
		switch {
		case ShouldMask(key) || ContainsTokenPrefix(t):
			return MaskValue(t)
		case strings.Contains(t, "://"):
			return MaskURL(t)
		}
		return t
	default:
		return v
	}
}

// findSecrets returns the dotted paths of plaintext secret values in cfg,
// sorted.
func findSecrets(cfg map[string]any) []string {
	var found []string
	var walk func(prefix string, v any)
	walk = func(prefix string, v any) {
		switch t := v.(type) {
		case map[string]any:
			for k, e := range t {
				p := k
				if prefix != "" {
					p = prefix + "." + k
				}
				if s, ok := e.(string); ok && looksSecret(k, s) {
					found = append(found, p)
					continue
				}
				walk(p, e)
			}
		case []any:
			for _, e := range t {
				walk(prefix, e)
			}
		}
	}
	walk("", cfg)
	slices.Sort(found)
	return found
}

// looksSecret reports whether a string value stored under key is a
// plaintext credential. Values that reference the environment, such as
// "${GITHUB_TOKEN}" or "$TOKEN", are not.
func looksSecret(key, value string) bool {
	if value == "" || strings.HasPrefix(value, "$") {
		return false
	}
	if ContainsTokenPrefix(value) {
		return true
	}
	return ShouldMask(key) && len(value) >= 8
}
