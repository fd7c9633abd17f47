package main

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A silent client must die by the ping check, which broadcasts the reason,
// not by its socket read deadline.
func TestNewClientReadDeadline(t *testing.T) {
	s := newTestServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	dialed, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer func() { _ = dialed.Close() }()

	conn, err := ln.Accept()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	c := NewClient(s, 1, conn)

	window := s.Config.PingRefreshDelay + s.Config.PingTimeoutDelay +
		s.Config.WakeupTime
	assert.Equal(t, window, c.Conn.ioWait)
	assert.True(t, c.Conn.ioWait > s.Config.PingTimeoutDelay)
}

func TestShutdownNotice(t *testing.T) {
	s := newTestServer(t)
	alice := newTestUser(t, s, 1, "alice")
	bob := newTestUser(t, s, 2, "bob")
	bob.ReceivesNotices = false

	s.shutdown()

	messages := drainMessages(&alice.Client)
	require.Len(t, messages, 2)
	assert.Equal(t, "NOTICE", messages[0].Command)
	assert.Equal(t,
		[]string{"alice", "WARNING: SERVER IS SHUTTING DOWN NOW !"},
		messages[0].Params)
	assert.Equal(t, "ERROR", messages[1].Command)
	assert.Equal(t, []string{"Server shutting down"}, messages[1].Params)

	// No notices flag, no warning. The ERROR still arrives.
	messages = drainMessages(&bob.Client)
	require.Len(t, messages, 1)
	assert.Equal(t, "ERROR", messages[0].Command)

	assert.Empty(t, s.Users)
	assert.Empty(t, s.Nicks)
	assert.True(t, s.isShuttingDown())
}
