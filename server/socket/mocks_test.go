package socket

import (
	"net"
	"time"
)

// mockConn implements Conn with pluggable functions.
type mockConn struct {
	readMessageFunc      func() ([]byte, error)
	writeJSONFunc        func(v interface{}) error
	writePingFunc        func() error
	writeCloseFunc       func(reason string) error
	setWriteDeadlineFunc func(t time.Time) error
	closeFunc            func() error
	isNormalCloseFunc    func(err error) bool
}

func (c *mockConn) ReadMessage() ([]byte, error) {
	if c.readMessageFunc != nil {
		return c.readMessageFunc()
	}
	select {} // block forever
}

func (c *mockConn) WriteJSON(v interface{}) error {
	if c.writeJSONFunc != nil {
		return c.writeJSONFunc(v)
	}
	return nil
}

func (c *mockConn) WritePing() error {
	if c.writePingFunc != nil {
		return c.writePingFunc()
	}
	return nil
}

func (c *mockConn) WriteClose(reason string) error {
	if c.writeCloseFunc != nil {
		return c.writeCloseFunc(reason)
	}
	return nil
}

func (c *mockConn) SetWriteDeadline(t time.Time) error {
	if c.setWriteDeadlineFunc != nil {
		return c.setWriteDeadlineFunc(t)
	}
	return nil
}

func (c *mockConn) Close() error {
	if c.closeFunc != nil {
		return c.closeFunc()
	}
	return nil
}

func (c *mockConn) IsNormalClose(err error) bool {
	if c.isNormalCloseFunc != nil {
		return c.isNormalCloseFunc(err)
	}
	return false
}

func (c *mockConn) RemoteAddr() net.Addr {
	return nil
}
