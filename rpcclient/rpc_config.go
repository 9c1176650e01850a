package rpcclient

import (
	"fmt"
	"strings"
)

// URLSchemePreference selects which endpoint of an RPC to dial when both a
// websocket and an HTTP URL are configured.
type URLSchemePreference int

const (
	// URLSchemePreferenceNone applies the default ordering: websocket first,
	// HTTP as the fallback.
	URLSchemePreferenceNone URLSchemePreference = iota
	URLSchemePreferenceWS
	URLSchemePreferenceHTTP
)

// URLSchemePreferenceFromString converts a string to URLSchemePreference.
// Recognized values are "ws"/"wss", "http"/"https" and "" for no preference.
func URLSchemePreferenceFromString(s string) (URLSchemePreference, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return URLSchemePreferenceNone, nil
	case "ws", "wss":
		return URLSchemePreferenceWS, nil
	case "http", "https":
		return URLSchemePreferenceHTTP, nil
	default:
		return URLSchemePreferenceNone, fmt.Errorf("unknown URL scheme preference %q", s)
	}
}

// RPC represents a single RPC endpoint configuration.
type RPC struct {
	// Name identifies the endpoint in logs.
	Name string

	WSURL   string
	HTTPURL string

	// PreferredURLScheme decides which of the two URLs is dialed when both
	// are set.
	PreferredURLScheme URLSchemePreference
}

// ToEndpoint returns the URL to dial according to the scheme preference,
// falling back to whichever URL is set.
func (r RPC) ToEndpoint() (string, error) {
	ordered := []string{r.WSURL, r.HTTPURL}
	if r.PreferredURLScheme == URLSchemePreferenceHTTP {
		ordered = []string{r.HTTPURL, r.WSURL}
	}

	for _, u := range ordered {
		if u != "" {
			return u, nil
		}
	}

	return "", fmt.Errorf("no URL configured for RPC %q", r.Name)
}

// RPCConfig is a configuration for a chain. It contains a chain selector and
// a list of RPCs.
type RPCConfig struct {
	ChainSelector uint64
	RPCs          []RPC
}
