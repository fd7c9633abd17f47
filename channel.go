package main

import (
	"strconv"

	"github.com/horgh/irc"
)

// channelMember holds a member's per channel state.
type channelMember struct {
	User *UserClient

	// Whether the member may speak in a moderated channel.
	CanSpeak bool

	// Channel operator status.
	IsOp bool
}

// Channel holds everything to do with a channel.
//
// A channel exists from the first JOIN of its name and dies the moment its
// last member leaves.
type Channel struct {
	// Canonicalized name.
	Name string

	// Current topic. May be blank.
	Topic string

	// Channel key. Blank means unset.
	Key string

	Private      bool
	Secret       bool
	InviteOnly   bool
	TopicOpsOnly bool
	NoOutsideMsg bool
	Moderated    bool

	// Maximum number of members.
	UserLimit int

	// Ban masks matched against nick!~user@host.
	Bans map[string]struct{}

	// Client ids of users invited to the channel.
	Invites map[uint64]struct{}

	// Client id to member state.
	// If we have zero members, we should not exist.
	Members map[uint64]*channelMember
}

func newChannel(name string, flags ChannelFlags, userLimit int) *Channel {
	return &Channel{
		Name:         name,
		Private:      flags.Private,
		Secret:       flags.Secret,
		InviteOnly:   flags.InviteOnly,
		TopicOpsOnly: flags.TopicOpsOnly,
		NoOutsideMsg: flags.NoOutsideMsg,
		Moderated:    flags.Moderated,
		UserLimit:    userLimit,
		Bans:         make(map[string]struct{}),
		Invites:      make(map[uint64]struct{}),
		Members:      make(map[uint64]*channelMember),
	}
}

// addMember joins a user to the channel and links the channel into the
// user's joined set.
func (ch *Channel) addMember(u *UserClient, isOp bool) {
	ch.Members[u.ID] = &channelMember{
		User:     u,
		CanSpeak: !ch.Moderated || isOp,
		IsOp:     isOp,
	}
	u.Channels[ch.Name] = ch
	delete(ch.Invites, u.ID)
}

// removeMember unlinks a user from the channel. The caller must drop the
// channel from the directory if it becomes empty.
func (ch *Channel) removeMember(u *UserClient) {
	delete(ch.Members, u.ID)
	delete(u.Channels, ch.Name)
}

// isBanned checks the user's prefix against the ban masks.
func (ch *Channel) isBanned(u *UserClient) bool {
	uhost := u.nickUhost()
	for mask := range ch.Bans {
		if matchesMask(mask, uhost) {
			return true
		}
	}
	return false
}

func (ch *Channel) isInvited(u *UserClient) bool {
	_, exists := ch.Invites[u.ID]
	return exists
}

func (ch *Channel) memberCanSpeak(u *UserClient) bool {
	member, exists := ch.Members[u.ID]
	if !exists {
		return false
	}
	return member.CanSpeak || member.IsOp
}

func (ch *Channel) memberHasOps(u *UserClient) bool {
	member, exists := ch.Members[u.ID]
	if !exists {
		return false
	}
	return member.IsOp
}

// writeToAll queues a message to every member, the origin included.
func (ch *Channel) writeToAll(m irc.Message) {
	for _, member := range ch.Members {
		member.User.maybeQueueMessage(m)
	}
}

// writeToOthers queues a message to every member except the given user.
func (ch *Channel) writeToOthers(u *UserClient, m irc.Message) {
	for _, member := range ch.Members {
		if member.User.ID == u.ID {
			continue
		}
		member.User.maybeQueueMessage(m)
	}
}

// modeString renders the channel's flags the way MODE reports them. Key and
// limit parameters follow the flag string. The key itself is masked unless
// the asking user is a member.
func (ch *Channel) modeString(showKey bool) (string, []string) {
	modes := "+"
	var params []string

	if ch.Private {
		modes += "p"
	}
	if ch.Secret {
		modes += "s"
	}
	if ch.InviteOnly {
		modes += "i"
	}
	if ch.TopicOpsOnly {
		modes += "t"
	}
	if ch.NoOutsideMsg {
		modes += "n"
	}
	if ch.Moderated {
		modes += "m"
	}
	if len(ch.Key) > 0 {
		modes += "k"
		if showKey {
			params = append(params, ch.Key)
		} else {
			params = append(params, "*")
		}
	}
	if ch.UserLimit > 0 {
		modes += "l"
		params = append(params, strconv.Itoa(ch.UserLimit))
	}

	return modes, params
}
