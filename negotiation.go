package quicmux

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/mkotake/quicmux/diag"
)

// NegotiateFunc is invoked once per inbound connection attempt to produce the
// TLS authentication parameters for that connection. It may block; the
// handshake for other connections is not held up by it.
type NegotiateFunc func(ctx context.Context, info *tls.ClientHelloInfo) (*AuthResult, error)

// AuthResult is the outcome of the negotiation callback: a server certificate
// source and the application protocols offered back to the peer.
//
// At least one certificate source is expected but not required; its absence
// is reported as a diagnostic, not an error. Protocols may be empty or list
// identifiers the listener was not configured with; both cases are likewise
// diagnostic-only and never fail the handshake.
type AuthResult struct {
	// Certificate is the server certificate for this connection.
	Certificate *tls.Certificate

	// GetCertificate selects the server certificate during the handshake.
	// Takes precedence over Certificate when both are set.
	GetCertificate func(*tls.ClientHelloInfo) (*tls.Certificate, error)

	// Protocols is the list of application protocols offered back to the
	// peer for ALPN selection.
	Protocols []string
}

func (r *AuthResult) hasCertificateSource() bool {
	return r != nil && (r.Certificate != nil || r.GetCertificate != nil)
}

// checkNegotiation inspects a negotiated result against the statically
// configured protocol set and reports at most one advisory finding. The
// checks are mutually exclusive, in priority order: missing certificate
// source, empty protocol list, protocols outside the configured set. The
// result is never mutated or rejected.
func checkNegotiation(result *AuthResult, configured []string) (diag.Event, bool) {
	now := time.Now()

	if !result.hasCertificateSource() {
		return diag.Event{Timestamp: now, Kind: diag.KindCertificateNotSpecified}, true
	}
	if len(result.Protocols) == 0 {
		return diag.Event{Timestamp: now, Kind: diag.KindProtocolsNotSpecified}, true
	}
	if unknown := unknownProtocols(result.Protocols, configured); len(unknown) > 0 {
		return diag.Event{Timestamp: now, Kind: diag.KindUnknownProtocols, Protocols: unknown}, true
	}
	return diag.Event{}, false
}

// unknownProtocols returns the offered identifiers missing from the
// configured set, preserving offer order.
func unknownProtocols(offered, configured []string) []string {
	known := make(map[string]struct{}, len(configured))
	for _, p := range configured {
		known[p] = struct{}{}
	}
	var unknown []string
	for _, p := range offered {
		if _, ok := known[p]; !ok {
			unknown = append(unknown, p)
		}
	}
	return unknown
}
