package quicmux

import (
	"context"
	"crypto/tls"
	"net"
	"sync"
	"time"

	"github.com/mkotake/quicmux/diag"
	"github.com/mkotake/quicmux/quic"
	"github.com/stretchr/testify/mock"
)

var _ quic.Listener = (*MockQUICListener)(nil)

// MockQUICListener is a mock implementation of quic.Listener using testify/mock.
type MockQUICListener struct {
	mock.Mock
	AcceptFunc func(ctx context.Context) (quic.Connection, error)
}

func (m *MockQUICListener) Accept(ctx context.Context) (quic.Connection, error) {
	if m.AcceptFunc != nil {
		return m.AcceptFunc(ctx)
	}
	args := m.Called(ctx)
	conn, _ := args.Get(0).(quic.Connection)
	return conn, args.Error(1)
}

func (m *MockQUICListener) Addr() net.Addr {
	args := m.Called()
	return args.Get(0).(net.Addr)
}

func (m *MockQUICListener) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ quic.Connection = (*MockQUICConnection)(nil)

// MockQUICConnection is a mock implementation of quic.Connection using testify/mock.
type MockQUICConnection struct {
	mock.Mock
	AcceptStreamFunc      func(ctx context.Context) (quic.Stream, error)
	AcceptUniStreamFunc   func(ctx context.Context) (quic.ReceiveStream, error)
	OpenStreamSyncFunc    func(ctx context.Context) (quic.Stream, error)
	OpenUniStreamSyncFunc func(ctx context.Context) (quic.SendStream, error)
	ctx                   context.Context
	cancel                context.CancelFunc
	ctxOnce               sync.Once
}

func (m *MockQUICConnection) initContext() {
	m.ctxOnce.Do(func() {
		m.ctx, m.cancel = context.WithCancel(context.Background())
	})
}

func (m *MockQUICConnection) AcceptStream(ctx context.Context) (quic.Stream, error) {
	if m.AcceptStreamFunc != nil {
		return m.AcceptStreamFunc(ctx)
	}
	args := m.Called(ctx)
	stream, _ := args.Get(0).(quic.Stream)
	return stream, args.Error(1)
}

func (m *MockQUICConnection) AcceptUniStream(ctx context.Context) (quic.ReceiveStream, error) {
	if m.AcceptUniStreamFunc != nil {
		return m.AcceptUniStreamFunc(ctx)
	}
	args := m.Called(ctx)
	stream, _ := args.Get(0).(quic.ReceiveStream)
	return stream, args.Error(1)
}

func (m *MockQUICConnection) OpenStreamSync(ctx context.Context) (quic.Stream, error) {
	if m.OpenStreamSyncFunc != nil {
		return m.OpenStreamSyncFunc(ctx)
	}
	args := m.Called(ctx)
	stream, _ := args.Get(0).(quic.Stream)
	return stream, args.Error(1)
}

func (m *MockQUICConnection) OpenUniStreamSync(ctx context.Context) (quic.SendStream, error) {
	if m.OpenUniStreamSyncFunc != nil {
		return m.OpenUniStreamSyncFunc(ctx)
	}
	args := m.Called(ctx)
	stream, _ := args.Get(0).(quic.SendStream)
	return stream, args.Error(1)
}

func (m *MockQUICConnection) CloseWithError(code quic.ApplicationErrorCode, msg string) error {
	m.initContext()
	m.cancel()
	args := m.Called(code, msg)
	return args.Error(0)
}

func (m *MockQUICConnection) ConnectionState() quic.ConnectionState {
	args := m.Called()
	return args.Get(0).(quic.ConnectionState)
}

func (m *MockQUICConnection) Context() context.Context {
	m.initContext()
	return m.ctx
}

// CancelContext simulates the transport closing the connection.
func (m *MockQUICConnection) CancelContext() {
	m.initContext()
	m.cancel()
}

func (m *MockQUICConnection) LocalAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 4433}
}

func (m *MockQUICConnection) RemoteAddr() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 54321}
}

var _ quic.Stream = (*MockQUICStream)(nil)

// MockQUICStream is a mock implementation of quic.Stream using testify/mock.
type MockQUICStream struct {
	mock.Mock
	ID        quic.StreamID
	ReadFunc  func(p []byte) (n int, err error)
	WriteFunc func(p []byte) (n int, err error)
}

func (m *MockQUICStream) StreamID() quic.StreamID {
	return m.ID
}

func (m *MockQUICStream) Read(p []byte) (n int, err error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(p)
	}
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockQUICStream) Write(p []byte) (n int, err error) {
	if m.WriteFunc != nil {
		return m.WriteFunc(p)
	}
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockQUICStream) CancelRead(code quic.StreamErrorCode) {
	m.Called(code)
}

func (m *MockQUICStream) CancelWrite(code quic.StreamErrorCode) {
	m.Called(code)
}

func (m *MockQUICStream) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockQUICStream) SetReadDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockQUICStream) SetWriteDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockQUICStream) SetDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockQUICStream) Context() context.Context {
	return context.Background()
}

var _ quic.ReceiveStream = (*MockReceiveStream)(nil)

// MockReceiveStream is a mock implementation of quic.ReceiveStream.
type MockReceiveStream struct {
	mock.Mock
	ID       quic.StreamID
	ReadFunc func(p []byte) (n int, err error)
}

func (m *MockReceiveStream) StreamID() quic.StreamID {
	return m.ID
}

func (m *MockReceiveStream) Read(p []byte) (n int, err error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(p)
	}
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockReceiveStream) CancelRead(code quic.StreamErrorCode) {
	m.Called(code)
}

func (m *MockReceiveStream) SetReadDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

var _ quic.SendStream = (*MockSendStream)(nil)

// MockSendStream is a mock implementation of quic.SendStream.
type MockSendStream struct {
	mock.Mock
	ID        quic.StreamID
	WriteFunc func(p []byte) (n int, err error)
}

func (m *MockSendStream) StreamID() quic.StreamID {
	return m.ID
}

func (m *MockSendStream) Write(p []byte) (n int, err error) {
	if m.WriteFunc != nil {
		return m.WriteFunc(p)
	}
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSendStream) CancelWrite(code quic.StreamErrorCode) {
	m.Called(code)
}

func (m *MockSendStream) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSendStream) SetWriteDeadline(t time.Time) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockSendStream) Context() context.Context {
	return context.Background()
}

// eventRecorder collects diagnostic events for assertions.
type eventRecorder struct {
	mu     sync.Mutex
	events []diag.Event
}

func (r *eventRecorder) Log(event diag.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) Events() []diag.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]diag.Event(nil), r.events...)
}

func (r *eventRecorder) ByKind(kind diag.Kind) []diag.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []diag.Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

var _ diag.Logger = (*eventRecorder)(nil)

// testClientHello builds a minimal client hello for negotiation tests.
func testClientHello() *tls.ClientHelloInfo {
	return &tls.ClientHelloInfo{
		ServerName:      "localhost",
		SupportedProtos: []string{"h3"},
	}
}
