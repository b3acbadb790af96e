package quicmux

import (
	"crypto/tls"
	"log/slog"
	"os"
	"time"

	"github.com/mkotake/quicmux/diag"
	"github.com/mkotake/quicmux/quic"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBacklog is the per-connection buffer of accepted-but-undelivered
	// streams when Config.Backlog is zero.
	DefaultBacklog = 16

	// DefaultIdleTimeout applies when Config.IdleTimeout is zero.
	DefaultIdleTimeout = 30 * time.Second
)

// Config configures a Listener. It is consumed at bind time and immutable
// afterwards.
type Config struct {
	// Protocols is the statically configured set of application-layer
	// protocol identifiers (ALPN) the listener advertises. Required unless
	// derived from TLSConfig.NextProtos.
	Protocols []string

	// Negotiate produces the TLS authentication parameters for each inbound
	// connection attempt. If nil, both the callback and the protocol list are
	// derived from TLSConfig.
	Negotiate NegotiateFunc

	// TLSConfig is a pre-built TLS configuration used as the negotiation
	// source when Negotiate is nil, and as the base configuration otherwise.
	TLSConfig *tls.Config

	// IdleTimeout closes connections with no activity for this duration.
	IdleTimeout time.Duration

	// MaxBidiStreams limits concurrent peer-initiated bidirectional streams
	// per connection. Zero leaves the transport default.
	MaxBidiStreams int64

	// MaxUniStreams limits concurrent peer-initiated unidirectional streams
	// per connection. Zero leaves the transport default.
	MaxUniStreams int64

	// Backlog is the per-connection buffer of streams accepted from the
	// transport but not yet delivered through Conn.AcceptStream.
	Backlog int

	// Logger receives operational log records. Optional.
	Logger *slog.Logger

	// Diagnostics receives advisory diagnostic events. Optional.
	Diagnostics diag.Logger

	// ListenQUIC creates the underlying transport listener. Defaults to
	// quicgo.ListenAddrEarly.
	ListenQUIC quic.ListenAddrFunc
}

// Clone returns a shallow copy of the config with its protocol list copied.
func (c *Config) Clone() *Config {
	if c == nil {
		return &Config{}
	}
	clone := *c
	clone.Protocols = append([]string(nil), c.Protocols...)
	return &clone
}

func (c *Config) backlog() int {
	if c.Backlog > 0 {
		return c.Backlog
	}
	return DefaultBacklog
}

func (c *Config) idleTimeout() time.Duration {
	if c.IdleTimeout > 0 {
		return c.IdleTimeout
	}
	return DefaultIdleTimeout
}

// Duration is a time.Duration that decodes from YAML strings like "45s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// FileConfig is the YAML representation of listener settings. It carries the
// settings that can live in a file; the negotiation callback and TLS material
// are always supplied in code.
type FileConfig struct {
	// Address is the UDP endpoint to bind, e.g. ":4433".
	Address string `yaml:"address"`

	Protocols      []string `yaml:"protocols"`
	IdleTimeout    Duration `yaml:"idle_timeout"`
	MaxBidiStreams int64    `yaml:"max_bidi_streams"`
	MaxUniStreams  int64    `yaml:"max_uni_streams"`
	Backlog        int      `yaml:"backlog"`
}

// LoadConfig reads a FileConfig from a YAML file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, &ConfigurationError{Reason: "invalid config file", Err: err}
	}
	return &fc, nil
}

// Config converts the file settings into a Config. Callback and TLS fields
// remain unset.
func (fc *FileConfig) Config() *Config {
	return &Config{
		Protocols:      append([]string(nil), fc.Protocols...),
		IdleTimeout:    time.Duration(fc.IdleTimeout),
		MaxBidiStreams: fc.MaxBidiStreams,
		MaxUniStreams:  fc.MaxUniStreams,
		Backlog:        fc.Backlog,
	}
}
