package quicmux

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"github.com/mkotake/quicmux/diag"
	"github.com/mkotake/quicmux/quic"
	"github.com/mkotake/quicmux/quic/quicgo"
)

// Bind resolves the negotiation callback and protocol list from the config,
// performs the OS-level bind on the given UDP endpoint, and returns a fully
// bound, ready-to-accept listener.
//
// The endpoint must be a host:port pair; any other endpoint kind is rejected
// with a ConfigurationError. If config.Negotiate is set, the protocol list
// must come from config.Protocols; otherwise both the callback and the
// protocols are derived from config.TLSConfig. A missing callback source or
// an empty protocol list fails fast before any accept attempt.
func Bind(addr string, config *Config) (*Listener, error) {
	if config == nil {
		config = &Config{}
	}

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, &ConfigurationError{Reason: "endpoint must be a host:port pair", Err: err}
	}

	negotiate, protocols, err := resolveNegotiation(config)
	if err != nil {
		return nil, err
	}

	diags := config.Diagnostics
	if diags == nil {
		diags = diag.NoopLogger{}
	}

	l := &Listener{
		protocols: append([]string(nil), protocols...),
		negotiate: negotiate,
		base:      config.TLSConfig,
		logger:    config.Logger,
		diags:     diags,
		backlog:   config.backlog(),
	}

	listen := config.ListenQUIC
	if listen == nil {
		listen = quicgo.ListenAddrEarly
	}

	quicConf := &quic.Config{
		MaxIdleTimeout:        config.idleTimeout(),
		MaxIncomingStreams:    config.MaxBidiStreams,
		MaxIncomingUniStreams: config.MaxUniStreams,
	}

	ln, err := listen(udpAddr.String(), l.serverTLSConfig(), quicConf)
	if err != nil {
		return nil, fmt.Errorf("quicmux: failed to bind listener on %s: %w", addr, err)
	}

	// The requested address may carry a wildcard or ephemeral port; from here
	// on the listener reports the concrete bound endpoint.
	l.ln = ln
	l.addr = ln.Addr()

	if l.logger != nil {
		l.logger = l.logger.With("address", l.addr.String())
		l.logger.Debug("listener bound", "protocols", l.protocols)
	}

	return l, nil
}

// resolveNegotiation applies the configuration precedence: an explicit
// callback with Config.Protocols wins; a pre-built TLS config supplies both
// as the fallback.
func resolveNegotiation(config *Config) (NegotiateFunc, []string, error) {
	if config.Negotiate != nil {
		if len(config.Protocols) == 0 {
			return nil, nil, &ConfigurationError{Reason: "no application protocols configured"}
		}
		return config.Negotiate, config.Protocols, nil
	}

	tlsConf := config.TLSConfig
	if tlsConf == nil {
		return nil, nil, &ConfigurationError{Reason: "no negotiation callback or TLS configuration provided"}
	}
	protocols := config.Protocols
	if len(protocols) == 0 {
		protocols = tlsConf.NextProtos
	}
	if len(protocols) == 0 {
		return nil, nil, &ConfigurationError{Reason: "no application protocols configured"}
	}

	result := &AuthResult{
		GetCertificate: tlsConf.GetCertificate,
		Protocols:      protocols,
	}
	if len(tlsConf.Certificates) > 0 {
		result.Certificate = &tlsConf.Certificates[0]
	}
	negotiate := func(ctx context.Context, info *tls.ClientHelloInfo) (*AuthResult, error) {
		return result, nil
	}
	return negotiate, protocols, nil
}
