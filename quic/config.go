package quic

import "github.com/quic-go/quic-go"

// Config holds transport-level settings (idle timeout, stream limits).
type Config = quic.Config
