package quicmux

import (
	"crypto/tls"
	"testing"

	"github.com/mkotake/quicmux/diag"
	"github.com/stretchr/testify/assert"
)

func TestCheckNegotiation(t *testing.T) {
	cert := &tls.Certificate{}
	configured := []string{"h3", "h3-29"}

	tests := map[string]struct {
		result        *AuthResult
		wantFired     bool
		wantKind      diag.Kind
		wantProtocols []string
	}{
		"certificate and known protocols": {
			result:    &AuthResult{Certificate: cert, Protocols: []string{"h3"}},
			wantFired: false,
		},
		"all configured protocols offered": {
			result:    &AuthResult{Certificate: cert, Protocols: []string{"h3", "h3-29"}},
			wantFired: false,
		},
		"no certificate source": {
			result:    &AuthResult{Protocols: []string{"h3"}},
			wantFired: true,
			wantKind:  diag.KindCertificateNotSpecified,
		},
		"nil result": {
			result:    nil,
			wantFired: true,
			wantKind:  diag.KindCertificateNotSpecified,
		},
		"selection callback counts as certificate source": {
			result: &AuthResult{
				GetCertificate: func(*tls.ClientHelloInfo) (*tls.Certificate, error) { return cert, nil },
				Protocols:      []string{"h3"},
			},
			wantFired: false,
		},
		"empty protocols": {
			result:    &AuthResult{Certificate: cert},
			wantFired: true,
			wantKind:  diag.KindProtocolsNotSpecified,
		},
		"unknown protocols": {
			result:        &AuthResult{Certificate: cert, Protocols: []string{"h3", "smtp", "imap"}},
			wantFired:     true,
			wantKind:      diag.KindUnknownProtocols,
			wantProtocols: []string{"smtp", "imap"},
		},
		"all protocols unknown": {
			result:        &AuthResult{Certificate: cert, Protocols: []string{"smtp"}},
			wantFired:     true,
			wantKind:      diag.KindUnknownProtocols,
			wantProtocols: []string{"smtp"},
		},
		"missing certificate takes priority over protocol checks": {
			result:    &AuthResult{Protocols: []string{"smtp"}},
			wantFired: true,
			wantKind:  diag.KindCertificateNotSpecified,
		},
		"empty protocols suppresses unknown-protocol check": {
			result:    &AuthResult{Certificate: cert, Protocols: nil},
			wantFired: true,
			wantKind:  diag.KindProtocolsNotSpecified,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			event, fired := checkNegotiation(tt.result, configured)

			assert.Equal(t, tt.wantFired, fired)
			if tt.wantFired {
				assert.Equal(t, tt.wantKind, event.Kind)
				assert.Equal(t, tt.wantProtocols, event.Protocols)
				assert.False(t, event.Timestamp.IsZero())
			}
		})
	}
}

func TestUnknownProtocols(t *testing.T) {
	tests := map[string]struct {
		offered    []string
		configured []string
		want       []string
	}{
		"subset":         {offered: []string{"h3"}, configured: []string{"h3", "h3-29"}, want: nil},
		"disjoint":       {offered: []string{"smtp"}, configured: []string{"h3"}, want: []string{"smtp"}},
		"mixed":          {offered: []string{"smtp", "h3"}, configured: []string{"h3"}, want: []string{"smtp"}},
		"order preserved": {
			offered:    []string{"c", "a", "b"},
			configured: []string{},
			want:       []string{"c", "a", "b"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, unknownProtocols(tt.offered, tt.configured))
		})
	}
}
