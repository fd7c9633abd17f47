package main

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/horgh/irc"
)

// Server holds the state for a server.
// I put everything global to a server in an instance of struct rather than
// have global variables.
type Server struct {
	Config Config

	// Client id to Client. Connections that have not finished registration.
	Clients map[uint64]*Client

	// Client id to UserClient. Registered users.
	Users map[uint64]*UserClient

	// Canonicalized nickname to client id. Only registered users are
	// reachable by nickname.
	Nicks map[string]uint64

	// Channel name (canonicalized) to Channel.
	Channels map[string]*Channel

	// When we close this channel, this indicates that we're shutting down.
	// Other goroutines can check if this channel is closed.
	ShutdownChan chan struct{}

	// Tell the server something on this channel.
	ToServerChan chan Event

	// TCP listener.
	Listener net.Listener

	// WaitGroup to ensure all goroutines clean up before we end.
	WG sync.WaitGroup
}

// Event holds a message containing something to tell the server.
type Event struct {
	Type EventType

	// We don't always know whether the client registered. Use ID where
	// possible.
	ClientID uint64

	Client *Client

	Message irc.Message
}

// EventType is a type of event we can tell the server about.
type EventType int

const (
	// NullEvent is a default event. This means the event was not populated.
	NullEvent EventType = iota

	// NewClientEvent means a new client connected.
	NewClientEvent

	// DeadClientEvent means client died for some reason. Clean it up.
	DeadClientEvent

	// MessageFromClientEvent means a client sent a message.
	MessageFromClientEvent

	// WakeUpEvent means the server should wake up and do bookkeeping.
	WakeUpEvent
)

func main() {
	log.SetFlags(0)

	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newServer(listenHost, listenPort, configFile string) (*Server, error) {
	s := Server{
		Clients:  make(map[uint64]*Client),
		Users:    make(map[uint64]*UserClient),
		Nicks:    make(map[string]uint64),
		Channels: make(map[string]*Channel),

		// shutdown() closes this channel.
		ShutdownChan: make(chan struct{}),

		// We never manually close this channel.
		ToServerChan: make(chan Event),
	}

	if err := s.checkAndParseConfig(listenHost, listenPort,
		configFile); err != nil {
		return nil, fmt.Errorf("configuration problem: %s", err)
	}

	s.Config.CreatedDate = time.Now().Format("2006-01-02 15:04:05 MST")

	return &s, nil
}

// listen opens the TCP port.
func (s *Server) listen() error {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.Config.ListenHost,
		s.Config.ListenPort))
	if err != nil {
		return fmt.Errorf("unable to listen: %s", err)
	}
	s.Listener = ln
	return nil
}

// start starts up the server.
//
// We start goroutines and then receive messages on our channels until
// shutdown.
func (s *Server) start() error {
	if s.Listener == nil {
		if err := s.listen(); err != nil {
			return err
		}
	}

	// acceptConnections accepts connections on the TCP listener.
	s.WG.Add(1)
	go s.acceptConnections()

	// Alarm is a goroutine to wake up this one periodically so we can do
	// things like ping clients.
	s.WG.Add(1)
	go s.alarm()

	log.Printf("skyirc started on %s", s.Listener.Addr())

	s.eventLoop()

	// We don't need to drain any channels. None close that will have any
	// goroutines blocked on them.

	s.WG.Wait()

	return nil
}

// eventLoop processes events on the server's channel.
//
// It continues until the shutdown channel closes, indicating shutdown.
func (s *Server) eventLoop() {
	for {
		select {
		case evt := <-s.ToServerChan:
			switch evt.Type {
			case NewClientEvent:
				s.handleNewClient(evt.Client)

			case DeadClientEvent:
				if client, exists := s.Clients[evt.ClientID]; exists {
					log.Printf("Client %s died.", client)
					client.quit("Connection reset by peer")
				}
				if user, exists := s.Users[evt.ClientID]; exists {
					log.Printf("Client %s died.", user)
					user.quit("Connection reset by peer")
				}

			case MessageFromClientEvent:
				if client, exists := s.Clients[evt.ClientID]; exists {
					log.Printf("Client %s: Message: %s", client, evt.Message)
					client.handleMessage(evt.Message)
				}
				if user, exists := s.Users[evt.ClientID]; exists {
					log.Printf("Client %s: Message: %s", user, evt.Message)
					user.handleMessage(evt.Message)
				}

			case WakeUpEvent:
				s.checkAndPingClients()

			default:
				log.Fatalf("Unexpected event: %d", evt.Type)
			}

		case <-s.ShutdownChan:
			return
		}
	}
}

// handleNewClient accounts for a new connection.
//
// If the user directory is at its cap, we drop the connection without a
// reply. Otherwise the client gets its placeholder nick and the AUTH
// notices.
func (s *Server) handleNewClient(c *Client) {
	if len(s.Clients)+len(s.Users) >= s.Config.MaxUsers {
		log.Printf("Client %s: Server full, dropping.", c)
		close(c.WriteChan)
		return
	}

	log.Printf("New client connection: %s", c)

	c.DisplayNick = makeAnonNick(c.ID)
	s.Clients[c.ID] = c

	for _, notice := range []string{
		"*** Looking up your hostname...",
		"*** Found your hostname",
		"*** Checking Ident",
		"*** No Ident response",
	} {
		c.maybeQueueMessage(irc.Message{
			Prefix:  s.Config.ServerName,
			Command: "NOTICE",
			Params:  []string{"AUTH", notice},
		})
	}
}

// shutdown starts server shutdown.
func (s *Server) shutdown() {
	log.Printf("Server shutdown initiated.")

	// Closing ShutdownChan indicates to other goroutines that we're shutting
	// down.
	close(s.ShutdownChan)

	if s.Listener != nil {
		if err := s.Listener.Close(); err != nil {
			log.Printf("Problem closing TCP listener: %s", err)
		}
	}

	// All clients need to be told. This also closes their write channels.
	for _, client := range s.Clients {
		client.quit("Server shutting down")
	}

	s.messageToAllUsers("WARNING: SERVER IS SHUTTING DOWN NOW !")
	for _, user := range s.Users {
		user.quit("Server shutting down")
	}
}

// acceptConnections accepts TCP connections and tells the main server loop
// through a channel. It sets up separate goroutines for reading/writing to
// and from the client.
func (s *Server) acceptConnections() {
	defer s.WG.Done()

	id := uint64(0)

	for {
		if s.isShuttingDown() {
			break
		}

		conn, err := s.Listener.Accept()
		if err != nil {
			log.Printf("Failed to accept connection: %s", err)
			continue
		}

		client := NewClient(s, id, conn)

		// Handle rollover of uint64. Unlikely to happen (outside abuse) but.
		if id+1 == 0 {
			log.Fatalf("Unique ids rolled over!")
		}
		id++

		// Make sure the server knows about the client before it starts hearing
		// anything from its other channels about the client.
		s.newEvent(Event{Type: NewClientEvent, Client: client})

		s.WG.Add(1)
		go client.readLoop()
		s.WG.Add(1)
		go client.writeLoop()
	}

	log.Printf("Connection accepter shutting down.")
}

// Return true if the server is shutting down.
func (s *Server) isShuttingDown() bool {
	// No messages get sent to this channel, so if we receive a message on it,
	// then we know the channel was closed.
	select {
	case <-s.ShutdownChan:
		return true
	default:
		return false
	}
}

// Alarm sends a message to the server goroutine to wake it up.
// It sleeps and then repeats.
func (s *Server) alarm() {
	defer s.WG.Done()

	for {
		if s.isShuttingDown() {
			break
		}

		time.Sleep(s.Config.WakeupTime)

		s.newEvent(Event{Type: WakeUpEvent})
	}

	log.Printf("Alarm shutting down.")
}

// checkAndPingClients looks at each connected client.
//
// Unregistered connections that idle too long get cut off.
//
// Registered users that have been quiet for the refresh delay get a PING
// with a fresh token. A user that has not answered a challenge within the
// timeout delay is dead.
func (s *Server) checkAndPingClients() {
	now := time.Now()

	for _, client := range s.Clients {
		timeIdle := now.Sub(client.LastActivityTime)

		if timeIdle > s.Config.PingTimeoutDelay {
			client.quit("Registration timeout")
		}
	}

	for _, user := range s.Users {
		if len(user.LastPingToken) > 0 &&
			now.Sub(user.LastPongTime) > s.Config.PingTimeoutDelay {
			user.quit("Ping timeout")
			continue
		}

		if now.Sub(user.LastPingTime) < s.Config.PingRefreshDelay {
			continue
		}

		token := makePingToken()
		user.maybeQueueMessage(irc.Message{
			Command: "PING",
			Params:  []string{token},
		})
		user.LastPingToken = token
		user.LastPingTime = now
	}
}

// newEvent tells the server something happened.
//
// Any goroutine can call this function.
//
// It will not block on shutdown as we select on the shutdown channel which
// we close when shutting down the server.
func (s *Server) newEvent(evt Event) {
	select {
	case s.ToServerChan <- evt:
	case <-s.ShutdownChan:
	}
}

// userByNick resolves a nickname to a registered user.
func (s *Server) userByNick(nick string) (*UserClient, bool) {
	id, exists := s.Nicks[canonicalizeNick(nick)]
	if !exists {
		return nil, false
	}
	user, exists := s.Users[id]
	return user, exists
}

func (s *Server) channelByName(name string) (*Channel, bool) {
	ch, exists := s.Channels[canonicalizeChannel(name)]
	return ch, exists
}

// messageToAllUsers delivers a server NOTICE to every registered user that
// receives notices. Pre-registration connections never hear broadcasts.
func (s *Server) messageToAllUsers(text string) {
	for _, user := range s.Users {
		if !user.ReceivesNotices {
			continue
		}
		user.maybeQueueMessage(serverReply(s.Config.ServerName, "NOTICE",
			user.DisplayNick, text))
	}
}

// noticeIrcOps delivers a server NOTICE to every IRC operator that receives
// wallops.
func (s *Server) noticeIrcOps(text string) {
	for _, user := range s.Users {
		if !user.IsIrcOp || !user.ReceivesWallops {
			continue
		}
		user.maybeQueueMessage(serverReply(s.Config.ServerName, "NOTICE",
			s.Config.ServerName, text))
	}
}

func (s *Server) countInvisible() int {
	count := 0
	for _, user := range s.Users {
		if user.Invisible {
			count++
		}
	}
	return count
}

func (s *Server) countIrcOps() int {
	count := 0
	for _, user := range s.Users {
		if user.IsIrcOp {
			count++
		}
	}
	return count
}
