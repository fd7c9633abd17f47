package main

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/horgh/irc"
)

// clientState tracks how far a connection has come through registration.
// Registered connections are promoted to UserClient, so only the
// pre-registration states live here.
type clientState int

const (
	// waitForPass means the server is password protected and the connection
	// must PASS first.
	waitForPass clientState = iota

	// waitForUser means the connection may NICK and must USER to register.
	waitForUser
)

// Client holds state about a single client connection.
// All clients are in this state until they register as a user.
type Client struct {
	// Conn is the TCP connection to the client.
	Conn Conn

	// Their hostname. Resolved from the remote address at accept; falls back
	// to the IP as a string.
	Hostname string

	// A unique id. Internal to this server only.
	ID uint64

	// WriteChan is the channel to send to to write to the client.
	WriteChan chan irc.Message

	// Server references the main server the client is connected to.
	// It's helpful to have to avoid passing server all over the place.
	Server *Server

	// Track if we overflow our send queue. If we do, we'll kill the client.
	SendQueueExceeded bool

	State clientState

	// The last time we heard anything from the client.
	LastActivityTime time.Time

	// The last time we sent the client a PING.
	LastPingTime time.Time

	// Nick. Not canonicalized. Starts as the Anon_<hex> placeholder until
	// they send NICK.
	DisplayNick string

	// Set once they send a valid NICK.
	SentNick bool

	// Info from USER.
	PreRegUser     string
	PreRegRealName string
}

// NewClient creates a Client.
func NewClient(s *Server, id uint64, conn net.Conn) *Client {
	now := time.Now()

	state := waitForUser
	if s.Config.PasswordProtected {
		state = waitForPass
	}

	c := &Client{
		// The socket deadline sits beyond the dead-ping window. An idle
		// client must be removed by the ping check, which owns the close
		// reason, before the transport gives up on it.
		Conn: NewConn(conn, readDeadline(s.Config)),
		ID:   id,

		// Buffered channel. We don't want to block sending to the client from
		// the server. The client may be stuck. Make the buffer large enough
		// that it should only max out in case of connection issues.
		WriteChan: make(chan irc.Message, 32768),

		Server:           s,
		State:            state,
		LastActivityTime: now,
		LastPingTime:     now,
	}

	c.Hostname = lookupHostname(c.Conn.IP)

	return c
}

// readDeadline is how long a connection's reader may sit idle before its
// socket read fails. A fully quiet client goes unchallenged for up to
// PingRefreshDelay, then has PingTimeoutDelay to answer, and the alarm
// only fires every WakeupTime.
func readDeadline(c Config) time.Duration {
	return c.PingRefreshDelay + c.PingTimeoutDelay + c.WakeupTime
}

// lookupHostname resolves an IP to a hostname string. We fall back to the
// IP if reverse resolution fails or yields something we don't accept.
func lookupHostname(ip net.IP) string {
	names, err := net.LookupAddr(ip.String())
	if err != nil || len(names) == 0 {
		return ip.String()
	}

	name := names[0]
	if len(name) > 0 && name[len(name)-1] == '.' {
		name = name[:len(name)-1]
	}

	if !isValidHost(name) {
		return ip.String()
	}

	return name
}

func (c *Client) String() string {
	return fmt.Sprintf("%d %s", c.ID, c.Conn.RemoteAddr())
}

// Send a message to the client. We send it to its write channel, which in
// turn leads to writing it to its TCP socket.
//
// This function won't block. If the client's queue is full, we flag it as
// having a full send queue.
//
// Not blocking is important because the server sends the client messages
// this way, and if we block on a problem client, everything would grind to
// a halt.
func (c *Client) maybeQueueMessage(m irc.Message) {
	if c.SendQueueExceeded {
		return
	}

	select {
	case c.WriteChan <- m:
	default:
		c.SendQueueExceeded = true
	}
}

// readLoop endlessly reads from the client's TCP connection. It parses each
// IRC protocol message and passes it to the server through the server's
// channel.
func (c *Client) readLoop() {
	defer c.Server.WG.Done()

	for {
		if c.Server.isShuttingDown() {
			break
		}

		buf, err := c.Conn.Read()
		if err != nil {
			log.Printf("Client %s: %s", c, err)
			c.Server.newEvent(Event{Type: DeadClientEvent, ClientID: c.ID})
			break
		}

		message, err := irc.ParseMessage(buf)
		if err != nil {
			// Malformed lines are dropped without touching the connection.
			log.Printf("Client %s: Invalid message: %s: %s", c, buf, err)
			continue
		}

		c.Server.newEvent(Event{
			Type:     MessageFromClientEvent,
			ClientID: c.ID,
			Message:  message,
		})
	}

	log.Printf("Client %s: Reader shutting down.", c)
}

// writeLoop endlessly reads from the client's channel, encodes each message,
// and writes it to the client's TCP connection.
//
// When the channel is closed, or if we have a write error, close the TCP
// connection. I have this here so that we try to deliver messages to the
// client before closing its socket and giving up.
func (c *Client) writeLoop() {
	defer c.Server.WG.Done()

	// Ensure we also stop if the server is shutting down (indicated by the
	// ShutdownChan being closed). If we don't, then there is potential for us
	// to leak this goroutine.
Loop:
	for {
		select {
		case message, ok := <-c.WriteChan:
			if !ok {
				break Loop
			}

			if err := c.Conn.WriteMessage(message); err != nil {
				log.Printf("Client %s: %s", c, err)
				c.Server.newEvent(Event{Type: DeadClientEvent, ClientID: c.ID})
				break Loop
			}
		case <-c.Server.ShutdownChan:
			break Loop
		}
	}

	if err := c.Conn.Close(); err != nil {
		log.Printf("Client %s: Problem closing connection: %s", c, err)
	}

	log.Printf("Client %s: Writer shutting down.", c)
}

// quit means the client is going away before it registered. Tell it why and
// clean up.
//
// Note: Only the server goroutine should call this (due to channel use).
func (c *Client) quit(msg string) {
	// May already be cleaning up.
	if _, exists := c.Server.Clients[c.ID]; !exists {
		return
	}

	c.maybeQueueMessage(irc.Message{
		Prefix:  c.Server.Config.ServerName,
		Command: "ERROR",
		Params:  []string{msg},
	})

	close(c.WriteChan)

	delete(c.Server.Clients, c.ID)
}

// handleMessage dispatches a message from a connection that has not yet
// registered. Only the registration commands do anything here; everything
// else is dropped without a reply.
func (c *Client) handleMessage(m irc.Message) {
	c.LastActivityTime = time.Now()

	// Clients SHOULD NOT (section 2.3) send a prefix.
	if m.Prefix != "" {
		c.quit("No prefix permitted")
		return
	}

	switch m.Command {
	case "CAP":
		// Non-RFC command that appears to be widely supported. Ignore it.

	case "PASS":
		c.passCommand(m)

	case "NICK":
		c.nickCommand(m)

	case "USER":
		c.userCommand(m)

	case "QUIT":
		c.quit(c.DisplayNick)

	default:
		// Silent. The connection is not registered and we owe it nothing.
	}
}

func (c *Client) passCommand(m irc.Message) {
	if c.State != waitForPass {
		c.maybeQueueMessage(errAlreadyRegistered(c.Server.Config.ServerName))
		return
	}

	if len(m.Params) == 0 {
		c.maybeQueueMessage(errNeedMoreParams(c.Server.Config.ServerName,
			"PASS"))
		return
	}

	if _, ok := c.Server.Config.Passwords[m.Params[0]]; !ok {
		// Wrong password does not cost them the connection. They stay where
		// they are.
		c.maybeQueueMessage(errPasswdMismatch(c.Server.Config.ServerName))
		return
	}

	c.State = waitForUser
}

// The NICK command happens both at connection registration time and after.
// This is the registration side; UserClient handles renames.
func (c *Client) nickCommand(m irc.Message) {
	if c.State == waitForPass {
		c.maybeQueueMessage(errPasswdMismatch(c.Server.Config.ServerName))
		return
	}

	if len(m.Params) == 0 {
		c.maybeQueueMessage(errNoNicknameGiven(c.Server.Config.ServerName))
		return
	}
	nick := m.Params[0]

	if !isValidNick(nick) {
		c.maybeQueueMessage(errErroneusNickname(c.Server.Config.ServerName,
			nick))
		return
	}

	if _, exists := c.Server.Nicks[canonicalizeNick(nick)]; exists {
		c.maybeQueueMessage(errNicknameInUse(c.Server.Config.ServerName, nick))
		return
	}

	// We don't reply during registration (we don't have enough info, no
	// uhost anyway). NICK may repeat before USER; the last one wins.
	c.DisplayNick = nick
	c.SentNick = true
}

func (c *Client) userCommand(m irc.Message) {
	if c.State == waitForPass {
		c.maybeQueueMessage(errPasswdMismatch(c.Server.Config.ServerName))
		return
	}

	// 4 parameters: <user> <mode> <unused> <realname>
	if len(m.Params) != 4 {
		c.maybeQueueMessage(errNeedMoreParams(c.Server.Config.ServerName,
			"USER"))
		return
	}

	c.PreRegUser = m.Params[0]
	c.PreRegRealName = m.Params[3]

	// Registration completes here. NICK is optional; without it the
	// placeholder nick stands.
	c.registerUser()
}

// registerUser promotes the connection to a full user and sends the welcome
// sequence.
//
// Note: Only the server goroutine should call this.
func (c *Client) registerUser() {
	// The placeholder nick cannot collide, but a NICK sent earlier may have
	// been claimed by a faster connection in the meantime.
	if _, exists := c.Server.Nicks[canonicalizeNick(c.DisplayNick)]; exists {
		c.maybeQueueMessage(errNicknameInUse(c.Server.Config.ServerName,
			c.DisplayNick))
		return
	}

	u := NewUserClient(c)

	delete(c.Server.Clients, c.ID)
	c.Server.Users[u.ID] = u
	c.Server.Nicks[canonicalizeNick(u.DisplayNick)] = u.ID

	origin := c.Server.Config.ServerName

	u.maybeQueueMessage(rplWelcome(origin, u.DisplayNick, u.nickUhost()))
	u.maybeQueueMessage(rplYourHost(origin, u.DisplayNick,
		c.Server.Config.Version))
	u.maybeQueueMessage(rplCreated(origin, u.DisplayNick,
		c.Server.Config.CreatedDate))

	if c.Server.Config.SendStats {
		u.lusersCommand()
	}

	if c.Server.Config.SendMOTD {
		u.motdCommand()
	}
}
