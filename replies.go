package main

import (
	"fmt"

	"github.com/horgh/irc"
)

// This file builds every numeric and command reply we send. Each constructor
// returns a ready to queue message. The texts follow RFC 1459. Numerics do
// not carry the target's nick as the first parameter; the welcome sequence is
// the exception as it embeds the nick itself.

func serverReply(origin, command string, params ...string) irc.Message {
	return irc.Message{
		Prefix:  origin,
		Command: command,
		Params:  params,
	}
}

// userMessage builds a command echo that appears to come from a user. uhost
// is the nick!~user@host prefix of the origin.
func userMessage(uhost, command string, params ...string) irc.Message {
	return irc.Message{
		Prefix:  uhost,
		Command: command,
		Params:  params,
	}
}

// 001 RPL_WELCOME
func rplWelcome(origin, nick, uhost string) irc.Message {
	return serverReply(origin, "001", nick,
		fmt.Sprintf("Welcome to the %s IRC network %s", origin, uhost))
}

// 002 RPL_YOURHOST
func rplYourHost(origin, nick, version string) irc.Message {
	return serverReply(origin, "002", nick,
		fmt.Sprintf("Your host is %s, running SkyIRC version %s", origin,
			version))
}

// 003 RPL_CREATED
func rplCreated(origin, nick, created string) irc.Message {
	return serverReply(origin, "003", nick,
		fmt.Sprintf("This server was created %s", created))
}

// 219 RPL_ENDOFSTATS
func rplEndOfStats(origin, letter string) irc.Message {
	return serverReply(origin, "219", letter, "End of /STATS report")
}

// 251 RPL_LUSERCLIENT
func rplLuserClient(origin string, users, invisible, servers int) irc.Message {
	return serverReply(origin, "251",
		fmt.Sprintf("There are %d users and %d invisible on %d servers",
			users, invisible, servers))
}

// 252 RPL_LUSEROP
func rplLuserOp(origin string, ops int) irc.Message {
	return serverReply(origin, "252", fmt.Sprintf("%d", ops),
		"operator(s) online")
}

// 253 RPL_LUSERUNKNOWN
func rplLuserUnknown(origin string, unknown int) irc.Message {
	return serverReply(origin, "253", fmt.Sprintf("%d", unknown),
		"unknown connection(s)")
}

// 254 RPL_LUSERCHANNELS
func rplLuserChannels(origin string, channels int) irc.Message {
	return serverReply(origin, "254", fmt.Sprintf("%d", channels),
		"channels formed")
}

// 255 RPL_LUSERME
func rplLuserMe(origin string, clients, servers int) irc.Message {
	return serverReply(origin, "255",
		fmt.Sprintf("I have %d clients and %d servers", clients, servers))
}

// 256 RPL_ADMINME
func rplAdminMe(origin string) irc.Message {
	return serverReply(origin, "256", origin, "Administrative info")
}

// 257 RPL_ADMINLOC1
func rplAdminLoc1(origin, location string) irc.Message {
	return serverReply(origin, "257", location)
}

// 258 RPL_ADMINLOC2
func rplAdminLoc2(origin, location string) irc.Message {
	return serverReply(origin, "258", location)
}

// 259 RPL_ADMINMAIL
func rplAdminMail(origin, mail string) irc.Message {
	return serverReply(origin, "259", mail)
}

// 221 RPL_UMODEIS
func rplUModeIs(origin, modes string) irc.Message {
	return serverReply(origin, "221", modes)
}

// 301 RPL_AWAY
func rplAway(origin, nick, awayMessage string) irc.Message {
	return serverReply(origin, "301", nick, awayMessage)
}

// 302 RPL_USERHOST
func rplUserhost(origin, reply string) irc.Message {
	return serverReply(origin, "302", reply)
}

// 303 RPL_ISON
func rplIson(origin, nicks string) irc.Message {
	return serverReply(origin, "303", nicks)
}

// 305 RPL_UNAWAY
func rplUnaway(origin string) irc.Message {
	return serverReply(origin, "305",
		"You are no longer marked as being away")
}

// 306 RPL_NOWAWAY
func rplNowAway(origin string) irc.Message {
	return serverReply(origin, "306", "You have been marked as being away")
}

// 315 RPL_ENDOFWHO
func rplEndOfWho(origin, name string) irc.Message {
	return serverReply(origin, "315", name, "End of /WHO list")
}

// 318 RPL_ENDOFWHOIS
func rplEndOfWhois(origin, nick string) irc.Message {
	return serverReply(origin, "318", nick, "End of /WHOIS list")
}

// 321 RPL_LISTSTART
func rplListStart(origin string) irc.Message {
	return serverReply(origin, "321", "Channel", "Users  Name")
}

// 322 RPL_LIST
func rplList(origin, channel string, visible int, topic string) irc.Message {
	return serverReply(origin, "322", channel, fmt.Sprintf("%d", visible),
		topic)
}

// 323 RPL_LISTEND
func rplListEnd(origin string) irc.Message {
	return serverReply(origin, "323", "End of /LIST")
}

// 324 RPL_CHANNELMODEIS
func rplChannelModeIs(origin, channel, modes string,
	modeParams ...string) irc.Message {
	params := []string{channel, modes}
	params = append(params, modeParams...)
	return serverReply(origin, "324", params...)
}

// 331 RPL_NOTOPIC
func rplNoTopic(origin, channel string) irc.Message {
	return serverReply(origin, "331", channel, "No topic is set")
}

// 332 RPL_TOPIC
func rplTopic(origin, channel, topic string) irc.Message {
	return serverReply(origin, "332", channel, topic)
}

// 341 RPL_INVITING
func rplInviting(origin, channel, nick string) irc.Message {
	return serverReply(origin, "341", channel, nick)
}

// 351 RPL_VERSION
func rplVersion(origin, version, comments string) irc.Message {
	return serverReply(origin, "351", version, origin, comments)
}

// 353 RPL_NAMREPLY. display already carries the @ or + status marker and the
// member's full nick!~user@host.
func rplNamReply(origin, channel, display string) irc.Message {
	return serverReply(origin, "353", channel, display)
}

// 365 RPL_ENDOFLINKS
func rplEndOfLinks(origin, mask string) irc.Message {
	return serverReply(origin, "365", mask, "End of /LINKS list")
}

// 366 RPL_ENDOFNAMES
func rplEndOfNames(origin, channel string) irc.Message {
	return serverReply(origin, "366", channel, "End of /NAMES list")
}

// 367 RPL_BANLIST
func rplBanList(origin, channel, mask string) irc.Message {
	return serverReply(origin, "367", channel, mask)
}

// 368 RPL_ENDOFBANLIST
func rplEndOfBanList(origin, channel string) irc.Message {
	return serverReply(origin, "368", channel, "End of channel ban list")
}

// 369 RPL_ENDOFWHOWAS
func rplEndOfWhowas(origin, nick string) irc.Message {
	return serverReply(origin, "369", nick, "End of WHOWAS")
}

// 371 RPL_INFO
func rplInfo(origin, line string) irc.Message {
	return serverReply(origin, "371", line)
}

// 374 RPL_ENDOFINFO
func rplEndOfInfo(origin string) irc.Message {
	return serverReply(origin, "374", "End of /INFO list")
}

// 375 RPL_MOTDSTART
func rplMOTDStart(origin string) irc.Message {
	return serverReply(origin, "375",
		fmt.Sprintf("- %s Message of the day - ", origin))
}

// 372 RPL_MOTD
func rplMOTD(origin, line string) irc.Message {
	return serverReply(origin, "372", fmt.Sprintf("- %s", line))
}

// 376 RPL_ENDOFMOTD
func rplEndOfMOTD(origin string) irc.Message {
	return serverReply(origin, "376", "End of /MOTD command")
}

// 381 RPL_YOUREOPER
func rplYoureOper(origin string) irc.Message {
	return serverReply(origin, "381", "You are now an IRC operator")
}

// 382 RPL_REHASHING
func rplRehashing(origin, configFile string) irc.Message {
	return serverReply(origin, "382", configFile, "Rehashing")
}

// 391 RPL_TIME
func rplTime(origin, timeString string) irc.Message {
	return serverReply(origin, "391", origin, timeString)
}

// 401 ERR_NOSUCHNICK
func errNoSuchNick(origin, nick string) irc.Message {
	return serverReply(origin, "401", nick, "No such nick/channel")
}

// 402 ERR_NOSUCHSERVER
func errNoSuchServer(origin, server string) irc.Message {
	return serverReply(origin, "402", server, "No such server")
}

// 403 ERR_NOSUCHCHANNEL
func errNoSuchChannel(origin, channel string) irc.Message {
	return serverReply(origin, "403", channel, "No such channel")
}

// 404 ERR_CANNOTSENDTOCHAN
func errCannotSendToChan(origin, channel string) irc.Message {
	return serverReply(origin, "404", channel, "Cannot send to channel")
}

// 405 ERR_TOOMANYCHANNELS
func errTooManyChannels(origin, channel string) irc.Message {
	return serverReply(origin, "405", channel,
		"You have joined too many channels")
}

// 407 ERR_TOOMANYTARGETS
func errTooManyTargets(origin, target string) irc.Message {
	return serverReply(origin, "407", target,
		"Duplicate recipients. No message delivered")
}

// 409 ERR_NOORIGIN
func errNoOrigin(origin string) irc.Message {
	return serverReply(origin, "409", "No origin specified")
}

// 411 ERR_NORECIPIENT
func errNoRecipient(origin, command string) irc.Message {
	return serverReply(origin, "411",
		fmt.Sprintf("No recipient given (%s)", command))
}

// 412 ERR_NOTEXTTOSEND
func errNoTextToSend(origin string) irc.Message {
	return serverReply(origin, "412", "No text to send")
}

// 421 ERR_UNKNOWNCOMMAND
func errUnknownCommand(origin, command string) irc.Message {
	return serverReply(origin, "421", command, "Unknown command")
}

// 422 ERR_NOMOTD
func errNoMOTD(origin string) irc.Message {
	return serverReply(origin, "422", "MOTD File is missing")
}

// 424 ERR_FILEERROR
func errFileError(origin, fileOp, file string) irc.Message {
	return serverReply(origin, "424",
		fmt.Sprintf("File error doing %s on %s", fileOp, file))
}

// 431 ERR_NONICKNAMEGIVEN
func errNoNicknameGiven(origin string) irc.Message {
	return serverReply(origin, "431", "No nickname given")
}

// 432 ERR_ERRONEUSNICKNAME
func errErroneusNickname(origin, nick string) irc.Message {
	return serverReply(origin, "432", nick, "Erroneus nickname")
}

// 433 ERR_NICKNAMEINUSE
func errNicknameInUse(origin, nick string) irc.Message {
	return serverReply(origin, "433", nick, "Nickname is already in use")
}

// 441 ERR_USERNOTINCHANNEL
func errUserNotInChannel(origin, nick, channel string) irc.Message {
	return serverReply(origin, "441", nick, channel,
		"They aren't on that channel")
}

// 442 ERR_NOTONCHANNEL
func errNotOnChannel(origin, channel string) irc.Message {
	return serverReply(origin, "442", channel, "You're not on that channel")
}

// 443 ERR_USERONCHANNEL
func errUserOnChannel(origin, nick, channel string) irc.Message {
	return serverReply(origin, "443", nick, channel, "is already on channel")
}

// 445 ERR_SUMMONDISABLED
func errSummonDisabled(origin string) irc.Message {
	return serverReply(origin, "445", "SUMMON has been disabled")
}

// 446 ERR_USERSDISABLED
func errUsersDisabled(origin string) irc.Message {
	return serverReply(origin, "446", "USERS has been disabled")
}

// 461 ERR_NEEDMOREPARAMS
func errNeedMoreParams(origin, command string) irc.Message {
	return serverReply(origin, "461", command, "Not enough parameters")
}

// 462 ERR_ALREADYREGISTRED
func errAlreadyRegistered(origin string) irc.Message {
	return serverReply(origin, "462", "You may not reregister")
}

// 464 ERR_PASSWDMISMATCH
func errPasswdMismatch(origin string) irc.Message {
	return serverReply(origin, "464", "Password incorrect")
}

// 471 ERR_CHANNELISFULL
func errChannelIsFull(origin, channel string) irc.Message {
	return serverReply(origin, "471", channel, "Cannot join channel (+l)")
}

// 473 ERR_INVITEONLYCHAN
func errInviteOnlyChan(origin, channel string) irc.Message {
	return serverReply(origin, "473", channel, "Cannot join channel (+i)")
}

// 474 ERR_BANNEDFROMCHAN
func errBannedFromChan(origin, channel string) irc.Message {
	return serverReply(origin, "474", channel, "Cannot join channel (+b)")
}

// 475 ERR_BADCHANNELKEY
func errBadChannelKey(origin, channel string) irc.Message {
	return serverReply(origin, "475", channel, "Cannot join channel (+k)")
}

// 481 ERR_NOPRIVILEGES
func errNoPrivileges(origin string) irc.Message {
	return serverReply(origin, "481",
		"Permission Denied- You're not an IRC operator")
}

// 482 ERR_CHANOPRIVSNEEDED
func errChanOPrivsNeeded(origin, channel string) irc.Message {
	return serverReply(origin, "482", channel, "You're not channel operator")
}

// 501 ERR_UMODEUNKNOWNFLAG
func errUModeUnknownFlag(origin string) irc.Message {
	return serverReply(origin, "501", "Unknown MODE flag")
}

// 502 ERR_USERSDONTMATCH
func errUsersDontMatch(origin string) irc.Message {
	return serverReply(origin, "502", "Cant change mode for other users")
}
