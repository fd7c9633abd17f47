package main

import (
	"fmt"
	"time"

	"github.com/horgh/irc"
)

// UserClient holds information about a registered user.
type UserClient struct {
	Client

	// Sent by USER command. Stored with the fabricated ident prefix (~).
	User string

	// Sent by USER command.
	RealName string

	IsIrcOp         bool
	ReceivesWallops bool
	ReceivesNotices bool
	Invisible       bool
	Away            bool
	AwayMessage     string

	// Channel name (canonicalized) to Channel.
	Channels map[string]*Channel

	// The last time the client sent a PRIVMSG/NOTICE. We use this to decide
	// idle time.
	LastMessageTime time.Time

	// The token of the PING we last challenged the client with.
	LastPingToken string

	// The last time the client answered a challenge correctly.
	LastPongTime time.Time
}

// NewUserClient makes a UserClient from a Client. Flags start at the
// configured defaults.
func NewUserClient(c *Client) *UserClient {
	now := time.Now()
	defaults := c.Server.Config.UserDefaults

	u := &UserClient{
		Client:   *c,
		User:     "~" + c.PreRegUser,
		RealName: c.PreRegRealName,

		IsIrcOp:         defaults.IrcOp,
		ReceivesWallops: defaults.Wallops,
		ReceivesNotices: defaults.Notices,
		Invisible:       defaults.Invisible,
		Away:            defaults.Away,
		AwayMessage:     defaults.AwayMessage,

		Channels:        make(map[string]*Channel),
		LastMessageTime: now,
		LastPongTime:    now,
	}
	u.LastPingTime = now

	return u
}

func (u *UserClient) String() string {
	return fmt.Sprintf("%d %s", u.ID, u.nickUhost())
}

// nickUhost is the prefix we put on everything this user originates.
func (u *UserClient) nickUhost() string {
	return fmt.Sprintf("%s!%s@%s", u.DisplayNick, u.User, u.Hostname)
}

func (u *UserClient) onChannel(ch *Channel) bool {
	_, exists := u.Channels[ch.Name]
	return exists
}

// messageFromServer queues an IRC message that appears to be from the
// server.
//
// Note: Only the server goroutine should call this (due to channel use).
func (u *UserClient) messageFromServer(command string, params []string) {
	u.maybeQueueMessage(irc.Message{
		Prefix:  u.Server.Config.ServerName,
		Command: command,
		Params:  params,
	})
}

// part removes the user from a channel and tells everyone who needs to
// know. The parting user still sees the PART echo.
//
// Note: Only the server goroutine should call this.
func (u *UserClient) part(channelName, message string) {
	origin := u.Server.Config.ServerName
	channelName = canonicalizeChannel(channelName)

	if !isValidChannel(channelName) {
		u.maybeQueueMessage(errNoSuchChannel(origin, channelName))
		return
	}

	ch, exists := u.Server.Channels[channelName]
	if !exists {
		u.maybeQueueMessage(errNoSuchChannel(origin, channelName))
		return
	}

	if !u.onChannel(ch) {
		u.maybeQueueMessage(errNotOnChannel(origin, channelName))
		return
	}

	params := []string{ch.Name}
	if len(message) > 0 {
		params = append(params, message)
	}

	// Broadcast before removal so the parting user is still a recipient.
	ch.writeToAll(userMessage(u.nickUhost(), "PART", params...))

	ch.removeMember(u)

	if len(ch.Members) == 0 {
		delete(u.Server.Channels, ch.Name)
	}
}

// quit disconnects the user gracefully.
//
// The QUIT line reaches every user sharing at least one channel with the
// quitter, once, before anything is torn down. Then the user leaves each
// channel, the directories, and the socket goes away. Idempotent.
//
// Note: Only the server goroutine should call this (due to closing
// channel).
func (u *UserClient) quit(msg string) {
	// May already be cleaning up.
	if _, exists := u.Server.Users[u.ID]; !exists {
		return
	}

	quitMessage := userMessage(u.nickUhost(), "QUIT", msg)

	// Tell each client only once.
	toldClients := map[uint64]struct{}{u.ID: {}}

	for _, ch := range u.Channels {
		for _, member := range ch.Members {
			if _, exists := toldClients[member.User.ID]; exists {
				continue
			}

			member.User.maybeQueueMessage(quitMessage)
			toldClients[member.User.ID] = struct{}{}
		}

		ch.removeMember(u)
		if len(ch.Members) == 0 {
			delete(u.Server.Channels, ch.Name)
		}
	}

	u.messageFromServer("ERROR", []string{msg})
	close(u.WriteChan)

	delete(u.Server.Nicks, canonicalizeNick(u.DisplayNick))
	delete(u.Server.Users, u.ID)
}
