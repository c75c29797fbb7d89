package redis

import "strings"

const keyNamespace = "gl"

// Key joins the namespace and the non-blank parts with ':'.
func Key(parts ...string) string {
	var b strings.Builder
	b.WriteString(keyNamespace)
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			b.WriteByte(':')
			b.WriteString(part)
		}
	}
	return b.String()
}

// RateLimitKey returns the counter key for a rate limit scope.
func (c *Client) RateLimitKey(scope string) string {
	return Key("rate_limit", scope)
}

// AccessSessionKey returns the key that marks an access token jti as live.
func (c *Client) AccessSessionKey(accessID string) string {
	return Key("session", "access", accessID)
}
