package constant

import (
	"fmt"
	"strings"
)

// OAuthProvider identifies the external identity provider a user signed in with.
type OAuthProvider string

const (
	ProviderLocal    OAuthProvider = "LOCAL"
	ProviderGoogle   OAuthProvider = "GOOGLE"
	ProviderGitHub   OAuthProvider = "GITHUB"
	ProviderKeycloak OAuthProvider = "KEYCLOAK"
	ProviderFacebook OAuthProvider = "FACEBOOK"
	ProviderApple    OAuthProvider = "APPLE"
)

// ParseOAuthProvider parses a provider name, ignoring case and surrounding whitespace.
func ParseOAuthProvider(s string) (OAuthProvider, error) {
	switch p := OAuthProvider(strings.ToUpper(strings.TrimSpace(s))); p {
	case ProviderLocal, ProviderGoogle, ProviderGitHub, ProviderKeycloak, ProviderFacebook, ProviderApple:
		return p, nil
	default:
		return "", fmt.Errorf("unknown oauth provider %q", s)
	}
}

func (p OAuthProvider) String() string {
	return string(p)
}
