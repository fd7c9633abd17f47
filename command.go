package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"strings"
	"time"

	"github.com/horgh/irc"
)

// How many comma separated targets a single PRIVMSG/NOTICE may name.
const maxMessageTargets = 5

// handleMessage dispatches a message from a registered user.
//
// Note: Only the server goroutine should call this.
func (u *UserClient) handleMessage(m irc.Message) {
	u.LastActivityTime = time.Now()

	// Clients SHOULD NOT (section 2.3) send a prefix. I'm going to disallow it
	// completely.
	if m.Prefix != "" {
		u.messageFromServer("ERROR", []string{"Do not send a prefix"})
		return
	}

	switch m.Command {
	case "CAP":
		// Non-RFC command that appears to be widely supported. Ignore it.

	case "PASS", "USER":
		u.maybeQueueMessage(errAlreadyRegistered(u.Server.Config.ServerName))

	case "NICK":
		u.nickCommand(m)

	case "OPER":
		u.operCommand(m)

	case "QUIT":
		u.quitCommand(m)

	case "JOIN":
		u.joinCommand(m)

	case "PART":
		u.partCommand(m)

	case "TOPIC":
		u.topicCommand(m)

	case "NAMES":
		u.namesCommand(m)

	case "LIST":
		u.listCommand(m)

	case "INVITE":
		u.inviteCommand(m)

	case "KICK":
		u.kickCommand(m)

	case "PRIVMSG", "NOTICE":
		u.privmsgCommand(m)

	case "MODE":
		u.modeCommand(m)

	case "KILL":
		u.killCommand(m)

	case "WALLOPS":
		u.wallopsCommand(m)

	case "PING":
		u.pingCommand(m)

	case "PONG":
		u.pongCommand(m)

	case "AWAY":
		u.awayCommand(m)

	case "USERHOST":
		u.userhostCommand(m)

	case "ISON":
		u.isonCommand(m)

	case "VERSION":
		u.versionCommand(m)

	case "TIME":
		u.timeCommand(m)

	case "ADMIN":
		u.adminCommand(m)

	case "INFO":
		u.infoCommand(m)

	case "LUSERS":
		u.lusersCommand()

	case "MOTD":
		u.motdCommand()

	case "REHASH":
		u.rehashCommand()

	case "RESTART":
		u.restartCommand()

	case "ERROR":
		u.errorCommand(m)

	case "WHO":
		u.whoCommand(m)

	case "WHOIS":
		u.whoisCommand(m)

	case "WHOWAS":
		u.whowasCommand(m)

	case "LINKS":
		u.linksCommand(m)

	case "STATS":
		u.statsCommand(m)

	case "SUMMON":
		u.maybeQueueMessage(errSummonDisabled(u.Server.Config.ServerName))

	case "USERS":
		u.maybeQueueMessage(errUsersDisabled(u.Server.Config.ServerName))

	case "SERVER", "SQUIT", "CONNECT", "TRACE":
		// Server to server commands. We are a single server and say nothing.

	default:
		u.maybeQueueMessage(errUnknownCommand(u.Server.Config.ServerName,
			m.Command))
	}
}

// nickCommand renames a registered user. Everyone sharing a channel with
// them hears about it, as does the user itself.
func (u *UserClient) nickCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNoNicknameGiven(origin))
		return
	}
	nick := m.Params[0]

	if !isValidNick(nick) {
		u.maybeQueueMessage(errErroneusNickname(origin, nick))
		return
	}

	if id, exists := u.Server.Nicks[canonicalizeNick(nick)]; exists &&
		id != u.ID {
		u.maybeQueueMessage(errNicknameInUse(origin, nick))
		return
	}

	// The rename announcement carries the old prefix.
	nickMessage := userMessage(u.nickUhost(), "NICK", nick)

	toldClients := map[uint64]struct{}{}
	for _, ch := range u.Channels {
		for _, member := range ch.Members {
			if _, exists := toldClients[member.User.ID]; exists {
				continue
			}
			member.User.maybeQueueMessage(nickMessage)
			toldClients[member.User.ID] = struct{}{}
		}
	}

	if _, exists := toldClients[u.ID]; !exists {
		u.maybeQueueMessage(nickMessage)
	}

	delete(u.Server.Nicks, canonicalizeNick(u.DisplayNick))
	u.DisplayNick = nick
	u.Server.Nicks[canonicalizeNick(nick)] = u.ID
}

func (u *UserClient) operCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) < 2 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "OPER"))
		return
	}

	password, exists := u.Server.Config.Opers[m.Params[0]]
	if !exists || password != m.Params[1] {
		u.maybeQueueMessage(errPasswdMismatch(origin))
		return
	}

	u.IsIrcOp = true
	u.maybeQueueMessage(rplYoureOper(origin))
}

func (u *UserClient) quitCommand(m irc.Message) {
	msg := u.DisplayNick
	if len(m.Params) > 0 {
		msg = m.Params[0]
	}
	u.quit(msg)
}

func (u *UserClient) joinCommand(m irc.Message) {
	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(u.Server.Config.ServerName,
			"JOIN"))
		return
	}

	// JOIN 0 is a request to leave every channel.
	if m.Params[0] == "0" {
		for _, ch := range u.Channels {
			u.part(ch.Name, "")
		}
		return
	}

	targets := splitTargets(m.Params[0])

	var keys []string
	if len(m.Params) > 1 {
		keys = splitTargets(m.Params[1])
	}

	for i, target := range targets {
		key := ""
		if i < len(keys) {
			key = keys[i]
		}
		u.joinChannel(target, key)
	}
}

// joinChannel runs the admission checks for a single channel and, if they
// pass, joins the user and sends the topic and names replies.
func (u *UserClient) joinChannel(name, key string) {
	origin := u.Server.Config.ServerName
	name = canonicalizeChannel(name)

	if !isValidChannel(name) {
		u.maybeQueueMessage(errNoSuchChannel(origin, name))
		return
	}

	if len(u.Channels) >= u.Server.Config.MaxJoins {
		u.maybeQueueMessage(errTooManyChannels(origin, name))
		return
	}

	ch, exists := u.Server.Channels[name]
	if exists {
		if u.onChannel(ch) {
			return
		}

		if ch.isBanned(u) {
			u.maybeQueueMessage(errBannedFromChan(origin, name))
			return
		}

		if len(ch.Key) > 0 && key != ch.Key {
			u.maybeQueueMessage(errBadChannelKey(origin, name))
			return
		}

		if ch.InviteOnly && !ch.isInvited(u) {
			u.maybeQueueMessage(errInviteOnlyChan(origin, name))
			return
		}

		if ch.UserLimit > 0 && len(ch.Members) >= ch.UserLimit {
			u.maybeQueueMessage(errChannelIsFull(origin, name))
			return
		}
	} else {
		if len(u.Server.Channels) >= u.Server.Config.MaxChannels {
			u.maybeQueueMessage(errTooManyChannels(origin, name))
			return
		}

		ch = newChannel(name, u.Server.Config.ChannelDefaults,
			u.Server.Config.ChannelUserLimit)
		u.Server.Channels[name] = ch
	}

	// The creator gets ops. IRC operators get ops anywhere.
	ch.addMember(u, !exists || u.IsIrcOp)

	ch.writeToAll(userMessage(u.nickUhost(), "JOIN", ch.Name))

	if len(ch.Topic) > 0 {
		u.maybeQueueMessage(rplTopic(origin, ch.Name, ch.Topic))
	} else {
		u.maybeQueueMessage(rplNoTopic(origin, ch.Name))
	}

	u.namesReply(ch)
}

func (u *UserClient) partCommand(m irc.Message) {
	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(u.Server.Config.ServerName,
			"PART"))
		return
	}

	message := ""
	if len(m.Params) > 1 {
		message = m.Params[1]
	}

	for _, target := range splitTargets(m.Params[0]) {
		u.part(target, message)
	}
}

func (u *UserClient) topicCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "TOPIC"))
		return
	}

	ch, exists := u.Server.channelByName(m.Params[0])
	if !exists {
		u.maybeQueueMessage(errNoSuchChannel(origin, m.Params[0]))
		return
	}

	// Read. Any registered user may ask.
	if len(m.Params) == 1 {
		if len(ch.Topic) > 0 {
			u.maybeQueueMessage(rplTopic(origin, ch.Name, ch.Topic))
		} else {
			u.maybeQueueMessage(rplNoTopic(origin, ch.Name))
		}
		return
	}

	// Set. Members only.
	if !u.onChannel(ch) {
		u.maybeQueueMessage(errNotOnChannel(origin, ch.Name))
		return
	}

	if ch.TopicOpsOnly && !ch.memberHasOps(u) {
		u.maybeQueueMessage(errChanOPrivsNeeded(origin, ch.Name))
		return
	}

	topic := m.Params[1]
	if len(topic) > maxTopicLength {
		topic = topic[:maxTopicLength]
	}
	ch.Topic = topic

	ch.writeToAll(userMessage(u.nickUhost(), "TOPIC", ch.Name, topic))
}

// namesReply sends a 353 line per member followed by 366. Channel operators
// show with @, members who may speak in a moderated channel with +.
func (u *UserClient) namesReply(ch *Channel) {
	origin := u.Server.Config.ServerName

	for _, member := range ch.Members {
		display := member.User.nickUhost()
		if member.IsOp {
			display = "@" + display
		} else if ch.Moderated && member.CanSpeak {
			display = "+" + display
		}
		u.maybeQueueMessage(rplNamReply(origin, ch.Name, display))
	}

	u.maybeQueueMessage(rplEndOfNames(origin, ch.Name))
}

func (u *UserClient) namesCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		for _, ch := range u.Server.Channels {
			if ch.Secret && !u.onChannel(ch) {
				continue
			}
			u.namesReply(ch)
		}
		return
	}

	for _, target := range splitTargets(m.Params[0]) {
		ch, exists := u.Server.channelByName(target)
		if !exists || (ch.Secret && !u.onChannel(ch)) {
			// A bare end marker. The channel may not exist or may be hidden;
			// either way it looks the same.
			u.maybeQueueMessage(rplEndOfNames(origin,
				canonicalizeChannel(target)))
			continue
		}
		u.namesReply(ch)
	}
}

func (u *UserClient) listCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	u.maybeQueueMessage(rplListStart(origin))

	listOne := func(ch *Channel) {
		if ch.Secret && !u.onChannel(ch) {
			return
		}
		if ch.Private && !u.onChannel(ch) {
			u.maybeQueueMessage(rplList(origin, ch.Name, 0, "Prv"))
			return
		}
		u.maybeQueueMessage(rplList(origin, ch.Name, len(ch.Members), ch.Topic))
	}

	if len(m.Params) == 0 {
		for _, ch := range u.Server.Channels {
			listOne(ch)
		}
	} else {
		for _, target := range splitTargets(m.Params[0]) {
			if ch, exists := u.Server.channelByName(target); exists {
				listOne(ch)
			}
		}
	}

	u.maybeQueueMessage(rplListEnd(origin))
}

func (u *UserClient) inviteCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) < 2 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "INVITE"))
		return
	}

	target, exists := u.Server.userByNick(m.Params[0])
	if !exists {
		u.maybeQueueMessage(errNoSuchNick(origin, m.Params[0]))
		return
	}

	ch, exists := u.Server.channelByName(m.Params[1])
	if !exists {
		u.maybeQueueMessage(errNoSuchChannel(origin, m.Params[1]))
		return
	}

	if !u.onChannel(ch) {
		u.maybeQueueMessage(errNotOnChannel(origin, ch.Name))
		return
	}

	if ch.InviteOnly && !ch.memberHasOps(u) {
		u.maybeQueueMessage(errChanOPrivsNeeded(origin, ch.Name))
		return
	}

	if target.onChannel(ch) {
		u.maybeQueueMessage(errUserOnChannel(origin, target.DisplayNick,
			ch.Name))
		return
	}

	ch.Invites[target.ID] = struct{}{}

	target.maybeQueueMessage(userMessage(u.nickUhost(), "INVITE",
		target.DisplayNick, ch.Name))
	u.maybeQueueMessage(rplInviting(origin, ch.Name, target.DisplayNick))
}

func (u *UserClient) kickCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) < 2 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "KICK"))
		return
	}

	ch, exists := u.Server.channelByName(m.Params[0])
	if !exists {
		u.maybeQueueMessage(errNoSuchChannel(origin, m.Params[0]))
		return
	}

	if !u.onChannel(ch) {
		u.maybeQueueMessage(errNotOnChannel(origin, ch.Name))
		return
	}

	if !ch.memberHasOps(u) {
		u.maybeQueueMessage(errChanOPrivsNeeded(origin, ch.Name))
		return
	}

	target, exists := u.Server.userByNick(m.Params[1])
	if !exists || !target.onChannel(ch) {
		u.maybeQueueMessage(errUserNotInChannel(origin, m.Params[1], ch.Name))
		return
	}

	comment := u.DisplayNick
	if len(m.Params) > 2 {
		comment = m.Params[2]
	}

	// The victim hears the KICK too, then leaves.
	ch.writeToAll(userMessage(u.nickUhost(), "KICK", ch.Name,
		target.DisplayNick, comment))

	ch.removeMember(target)
	if len(ch.Members) == 0 {
		delete(u.Server.Channels, ch.Name)
	}
}

// privmsgCommand handles both PRIVMSG and NOTICE. NOTICE takes the same
// path but never generates a reply, and only reaches users who receive
// notices.
func (u *UserClient) privmsgCommand(m irc.Message) {
	origin := u.Server.Config.ServerName
	notice := m.Command == "NOTICE"

	if len(m.Params) == 0 {
		if !notice {
			u.maybeQueueMessage(errNoRecipient(origin, m.Command))
		}
		return
	}

	if len(m.Params) < 2 || len(m.Params[1]) == 0 {
		if !notice {
			u.maybeQueueMessage(errNoTextToSend(origin))
		}
		return
	}

	targets := splitTargets(m.Params[0])
	if len(targets) > maxMessageTargets {
		if !notice {
			u.maybeQueueMessage(errTooManyTargets(origin, m.Params[0]))
		}
		return
	}

	u.LastMessageTime = time.Now()

	for _, target := range targets {
		u.messageTarget(m.Command, target, m.Params[1])
	}
}

func (u *UserClient) messageTarget(command, target, text string) {
	origin := u.Server.Config.ServerName
	notice := command == "NOTICE"

	if len(target) > 0 && (target[0] == '#' || target[0] == '&') {
		ch, exists := u.Server.channelByName(target)
		if !exists {
			if !notice {
				u.maybeQueueMessage(errNoSuchChannel(origin, target))
			}
			return
		}

		if ch.NoOutsideMsg && !u.onChannel(ch) {
			if !notice {
				u.maybeQueueMessage(errCannotSendToChan(origin, ch.Name))
			}
			return
		}

		if ch.Moderated && !ch.memberCanSpeak(u) {
			if !notice {
				u.maybeQueueMessage(errCannotSendToChan(origin, ch.Name))
			}
			return
		}

		message := userMessage(u.nickUhost(), command, ch.Name, text)
		if notice {
			for _, member := range ch.Members {
				if member.User.ID == u.ID || !member.User.ReceivesNotices {
					continue
				}
				member.User.maybeQueueMessage(message)
			}
		} else {
			ch.writeToOthers(u, message)
		}
		return
	}

	targetUser, exists := u.Server.userByNick(target)
	if !exists {
		if !notice {
			u.maybeQueueMessage(errNoSuchNick(origin, target))
		}
		return
	}

	if notice && !targetUser.ReceivesNotices {
		return
	}

	targetUser.maybeQueueMessage(userMessage(u.nickUhost(), command,
		targetUser.DisplayNick, text))

	if !notice && targetUser.Away {
		u.maybeQueueMessage(rplAway(origin, targetUser.DisplayNick,
			targetUser.AwayMessage))
	}
}

// modeCommand reports modes. Changing them is not supported; attempts get
// the relevant permission error.
func (u *UserClient) modeCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "MODE"))
		return
	}
	target := m.Params[0]

	if len(target) > 0 && (target[0] == '#' || target[0] == '&') {
		ch, exists := u.Server.channelByName(target)
		if !exists {
			u.maybeQueueMessage(errNoSuchChannel(origin, target))
			return
		}

		if len(m.Params) == 1 {
			modes, modeParams := ch.modeString(u.onChannel(ch))
			u.maybeQueueMessage(rplChannelModeIs(origin, ch.Name, modes,
				modeParams...))
			return
		}

		if m.Params[1] == "b" || m.Params[1] == "+b" {
			for mask := range ch.Bans {
				u.maybeQueueMessage(rplBanList(origin, ch.Name, mask))
			}
			u.maybeQueueMessage(rplEndOfBanList(origin, ch.Name))
			return
		}

		u.maybeQueueMessage(errChanOPrivsNeeded(origin, ch.Name))
		return
	}

	if canonicalizeNick(target) != canonicalizeNick(u.DisplayNick) {
		u.maybeQueueMessage(errUsersDontMatch(origin))
		return
	}

	if len(m.Params) == 1 {
		u.maybeQueueMessage(rplUModeIs(origin, u.modeString()))
		return
	}

	u.maybeQueueMessage(errUModeUnknownFlag(origin))
}

func (u *UserClient) modeString() string {
	modes := "+"
	if u.IsIrcOp {
		modes += "o"
	}
	if u.Invisible {
		modes += "i"
	}
	if u.ReceivesWallops {
		modes += "w"
	}
	return modes
}

func (u *UserClient) killCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) < 2 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "KILL"))
		return
	}

	if !u.IsIrcOp {
		u.maybeQueueMessage(errNoPrivileges(origin))
		return
	}

	target, exists := u.Server.userByNick(m.Params[0])
	if !exists {
		u.maybeQueueMessage(errNoSuchNick(origin, m.Params[0]))
		return
	}

	// Confirm first. The operator may be killing itself.
	u.maybeQueueMessage(serverReply(origin, "NOTICE", u.DisplayNick,
		"KILL success !"))

	log.Printf("Client %s killed by %s: %s", target, u.DisplayNick,
		m.Params[1])

	target.quit(m.Params[1])
}

func (u *UserClient) wallopsCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "WALLOPS"))
		return
	}

	if !u.IsIrcOp {
		u.maybeQueueMessage(errNoPrivileges(origin))
		return
	}

	message := userMessage(u.nickUhost(), "WALLOPS", m.Params[0])

	for _, user := range u.Server.Users {
		if !user.IsIrcOp || !user.ReceivesWallops {
			continue
		}
		user.maybeQueueMessage(message)
	}
}

func (u *UserClient) pingCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNoOrigin(origin))
		return
	}

	if m.Params[0] != origin {
		u.maybeQueueMessage(errNoSuchServer(origin, m.Params[0]))
		return
	}

	params := []string{origin}
	if len(m.Params) > 1 {
		params = append(params, m.Params[1])
	}
	u.maybeQueueMessage(serverReply(origin, "PONG", params...))
}

// pongCommand answers our liveness challenge. A matching token resets the
// dead timer; anything else does not.
func (u *UserClient) pongCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNoOrigin(origin))
		return
	}

	token := m.Params[0]
	if len(m.Params) > 1 {
		if m.Params[0] != origin {
			u.maybeQueueMessage(errNoSuchServer(origin, m.Params[0]))
			return
		}
		token = m.Params[1]
	}

	if len(u.LastPingToken) == 0 || token != u.LastPingToken {
		u.maybeQueueMessage(errNoOrigin(origin))
		return
	}

	u.LastPingToken = ""
	u.LastPongTime = time.Now()
}

func (u *UserClient) awayCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) > 0 && len(m.Params[0]) > 0 {
		u.Away = true
		u.AwayMessage = m.Params[0]
		u.maybeQueueMessage(rplNowAway(origin))
		return
	}

	u.Away = false
	u.AwayMessage = ""
	u.maybeQueueMessage(rplUnaway(origin))
}

func (u *UserClient) userhostCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "USERHOST"))
		return
	}

	var entries []string
	for i, nick := range m.Params {
		if i >= 5 {
			break
		}

		target, exists := u.Server.userByNick(nick)
		if !exists {
			continue
		}

		entry := target.DisplayNick
		if target.IsIrcOp {
			entry += "*"
		}
		if target.Away {
			entry += "=-"
		} else {
			entry += "=+"
		}
		entry += fmt.Sprintf("%s@%s", target.User, target.Hostname)

		entries = append(entries, entry)
	}

	u.maybeQueueMessage(rplUserhost(origin, strings.Join(entries, " ")))
}

func (u *UserClient) isonCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "ISON"))
		return
	}

	var online []string
	for _, nick := range m.Params {
		if target, exists := u.Server.userByNick(nick); exists {
			online = append(online, target.DisplayNick)
		}
	}

	u.maybeQueueMessage(rplIson(origin, strings.Join(online, " ")))
}

func (u *UserClient) versionCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) > 0 && m.Params[0] != origin {
		u.maybeQueueMessage(errNoSuchServer(origin, m.Params[0]))
		return
	}

	u.maybeQueueMessage(rplVersion(origin, u.Server.Config.Version, "SkyIRC"))
}

func (u *UserClient) timeCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) > 0 && m.Params[0] != origin {
		u.maybeQueueMessage(errNoSuchServer(origin, m.Params[0]))
		return
	}

	u.maybeQueueMessage(rplTime(origin, time.Now().Format(time.RFC1123)))
}

func (u *UserClient) adminCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) > 0 && m.Params[0] != origin {
		u.maybeQueueMessage(errNoSuchServer(origin, m.Params[0]))
		return
	}

	u.maybeQueueMessage(rplAdminMe(origin))
	u.maybeQueueMessage(rplAdminLoc1(origin, u.Server.Config.AdminLocation1))
	u.maybeQueueMessage(rplAdminLoc2(origin, u.Server.Config.AdminLocation2))
	u.maybeQueueMessage(rplAdminMail(origin, u.Server.Config.AdminMail))
}

func (u *UserClient) infoCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) > 0 && m.Params[0] != origin {
		u.maybeQueueMessage(errNoSuchServer(origin, m.Params[0]))
		return
	}

	for _, line := range u.Server.Config.ServerInfos {
		u.maybeQueueMessage(rplInfo(origin, line))
	}
	u.maybeQueueMessage(rplEndOfInfo(origin))
}

// lusersCommand sends the user statistics block. Counts of zero suppress
// their lines, other than the first and last.
func (u *UserClient) lusersCommand() {
	origin := u.Server.Config.ServerName
	s := u.Server

	u.maybeQueueMessage(rplLuserClient(origin, len(s.Users),
		s.countInvisible(), 1))

	if ops := s.countIrcOps(); ops > 0 {
		u.maybeQueueMessage(rplLuserOp(origin, ops))
	}

	if len(s.Clients) > 0 {
		u.maybeQueueMessage(rplLuserUnknown(origin, len(s.Clients)))
	}

	if len(s.Channels) > 0 {
		u.maybeQueueMessage(rplLuserChannels(origin, len(s.Channels)))
	}

	u.maybeQueueMessage(rplLuserMe(origin, len(s.Users), 0))
}

func (u *UserClient) motdCommand() {
	origin := u.Server.Config.ServerName
	file := u.Server.Config.MOTDFile

	if len(file) == 0 {
		u.maybeQueueMessage(errNoMOTD(origin))
		return
	}

	contents, err := ioutil.ReadFile(file)
	if err != nil {
		log.Printf("Unable to read MOTD file %s: %s", file, err)
		u.maybeQueueMessage(errFileError(origin, "open", file))
		u.maybeQueueMessage(errNoMOTD(origin))
		return
	}

	u.maybeQueueMessage(rplMOTDStart(origin))
	for _, line := range strings.Split(strings.TrimRight(string(contents),
		"\n"), "\n") {
		u.maybeQueueMessage(rplMOTD(origin, line))
	}
	u.maybeQueueMessage(rplEndOfMOTD(origin))
}

func (u *UserClient) rehashCommand() {
	origin := u.Server.Config.ServerName

	if !u.IsIrcOp {
		u.maybeQueueMessage(errNoPrivileges(origin))
		return
	}

	configFile := u.Server.Config.ConfigFile
	if len(configFile) == 0 {
		configFile = "defaults"
	}

	u.maybeQueueMessage(rplRehashing(origin, configFile))
}

func (u *UserClient) restartCommand() {
	if !u.IsIrcOp {
		u.maybeQueueMessage(errNoPrivileges(u.Server.Config.ServerName))
		return
	}

	log.Printf("Restart requested by %s", u.DisplayNick)

	u.Server.shutdown()
}

// errorCommand relays a client reported error to the IRC operators.
func (u *UserClient) errorCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNeedMoreParams(origin, "ERROR"))
		return
	}

	if !u.IsIrcOp {
		u.maybeQueueMessage(errNoPrivileges(origin))
		return
	}

	text := fmt.Sprintf("ERROR from %s: %s", u.DisplayNick, m.Params[0])
	log.Print(text)
	u.Server.noticeIrcOps(text)
}

func (u *UserClient) whoCommand(m irc.Message) {
	name := "*"
	if len(m.Params) > 0 {
		name = m.Params[0]
	}
	u.maybeQueueMessage(rplEndOfWho(u.Server.Config.ServerName, name))
}

func (u *UserClient) whoisCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNoNicknameGiven(origin))
		return
	}

	u.maybeQueueMessage(rplEndOfWhois(origin, m.Params[0]))
}

func (u *UserClient) whowasCommand(m irc.Message) {
	origin := u.Server.Config.ServerName

	if len(m.Params) == 0 {
		u.maybeQueueMessage(errNoNicknameGiven(origin))
		return
	}

	u.maybeQueueMessage(rplEndOfWhowas(origin, m.Params[0]))
}

func (u *UserClient) linksCommand(m irc.Message) {
	mask := "*"
	if len(m.Params) > 0 {
		mask = m.Params[len(m.Params)-1]
	}
	u.maybeQueueMessage(rplEndOfLinks(u.Server.Config.ServerName, mask))
}

func (u *UserClient) statsCommand(m irc.Message) {
	letter := "*"
	if len(m.Params) > 0 {
		letter = m.Params[0]
	}
	u.maybeQueueMessage(rplEndOfStats(u.Server.Config.ServerName, letter))
}
