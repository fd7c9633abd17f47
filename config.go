package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/horgh/config"
)

// Config holds a server's configuration.
type Config struct {
	ListenHost string
	ListenPort string

	// Server name. Used as the origin prefix on everything we send, and it is
	// the only server target we accept in PING/PONG.
	ServerName string

	Version     string
	CreatedDate string

	// The config file we loaded, if any. REHASH reports it.
	ConfigFile string

	// Connection password. Any password in the set is accepted.
	PasswordProtected bool
	Passwords         map[string]struct{}

	// Oper name to password.
	Opers map[string]string

	SendMOTD bool
	MOTDFile string

	// Whether to send the LUSER block after welcome.
	SendStats bool

	// Period of time to wait before waking the server up (maximum).
	WakeupTime time.Duration

	// How often we challenge an idle client with PING.
	PingRefreshDelay time.Duration

	// How long a client may go without answering before we consider it dead.
	PingTimeoutDelay time.Duration

	MaxUsers         int
	MaxChannels      int
	MaxJoins         int
	ChannelUserLimit int

	UserDefaults    UserFlags
	ChannelDefaults ChannelFlags

	AdminLocation1 string
	AdminLocation2 string
	AdminMail      string

	// Lines we answer INFO with.
	ServerInfos []string
}

// UserFlags are the flags a connection starts with.
type UserFlags struct {
	IrcOp       bool
	Wallops     bool
	Notices     bool
	Invisible   bool
	Away        bool
	AwayMessage string
}

// ChannelFlags are the flags a newly created channel starts with.
type ChannelFlags struct {
	Private      bool
	Secret       bool
	InviteOnly   bool
	TopicOpsOnly bool
	NoOutsideMsg bool
	Moderated    bool
}

// checkAndParseConfig populates the server's configuration.
//
// The listen address comes from the command line. Everything else has a
// default and may be overridden by a key = value config file. We parse some
// values into alternate representations.
func (s *Server) checkAndParseConfig(listenHost, listenPort,
	file string) error {
	s.Config = Config{
		ListenHost: listenHost,
		ListenPort: listenPort,
		ServerName: "irc.local",
		Version:    "1.0",
		ConfigFile: file,

		Passwords: make(map[string]struct{}),
		Opers:     map[string]string{"root": "toor"},

		WakeupTime:       10 * time.Second,
		PingRefreshDelay: 60 * time.Second,
		PingTimeoutDelay: 120 * time.Second,

		MaxUsers:         100,
		MaxChannels:      100,
		MaxJoins:         10,
		ChannelUserLimit: 10,

		UserDefaults: UserFlags{Notices: true},
		ChannelDefaults: ChannelFlags{
			TopicOpsOnly: true,
			NoOutsideMsg: true,
		},

		AdminLocation1: "Somewhere",
		AdminLocation2: "Earth",
		AdminMail:      "admin@localhost",
		ServerInfos:    []string{"SkyIRC"},
	}

	if len(file) == 0 {
		return nil
	}

	configMap, err := config.ReadStringMap(file)
	if err != nil {
		return err
	}

	if v, exists := configMap["svdomain"]; exists {
		if !isValidHost(v) {
			return fmt.Errorf("invalid svdomain: %s", v)
		}
		s.Config.ServerName = v
	}

	if v, exists := configMap["server-password"]; exists {
		for _, password := range strings.Split(v, ",") {
			password = strings.TrimSpace(password)
			if len(password) == 0 {
				continue
			}
			s.Config.Passwords[password] = struct{}{}
		}
	}

	if err := parseBool(configMap, "password-protected",
		&s.Config.PasswordProtected); err != nil {
		return err
	}

	if s.Config.PasswordProtected && len(s.Config.Passwords) == 0 {
		return fmt.Errorf("password protection requires server-password")
	}

	if v, exists := configMap["opers-config"]; exists {
		opers, err := config.ReadStringMap(v)
		if err != nil {
			return fmt.Errorf("unable to load opers config: %s", err)
		}
		s.Config.Opers = opers
	}

	if err := parseBool(configMap, "send-motd", &s.Config.SendMOTD); err != nil {
		return err
	}
	if v, exists := configMap["motd-file"]; exists {
		s.Config.MOTDFile = v
	}
	if err := parseBool(configMap, "send-stats",
		&s.Config.SendStats); err != nil {
		return err
	}

	if err := parseDuration(configMap, "wakeup-time",
		&s.Config.WakeupTime); err != nil {
		return err
	}
	if err := parseDuration(configMap, "ping-refresh-delay",
		&s.Config.PingRefreshDelay); err != nil {
		return err
	}
	if err := parseDuration(configMap, "ping-timeout-delay",
		&s.Config.PingTimeoutDelay); err != nil {
		return err
	}

	if err := parseInt(configMap, "max-users", &s.Config.MaxUsers); err != nil {
		return err
	}
	if err := parseInt(configMap, "max-channels",
		&s.Config.MaxChannels); err != nil {
		return err
	}
	if err := parseInt(configMap, "max-joins", &s.Config.MaxJoins); err != nil {
		return err
	}
	if err := parseInt(configMap, "channel-user-limit",
		&s.Config.ChannelUserLimit); err != nil {
		return err
	}

	if err := parseBool(configMap, "default-ircop",
		&s.Config.UserDefaults.IrcOp); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-wallops",
		&s.Config.UserDefaults.Wallops); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-notices",
		&s.Config.UserDefaults.Notices); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-invisible",
		&s.Config.UserDefaults.Invisible); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-away",
		&s.Config.UserDefaults.Away); err != nil {
		return err
	}
	if v, exists := configMap["default-away-message"]; exists {
		s.Config.UserDefaults.AwayMessage = v
	}

	if err := parseBool(configMap, "default-private",
		&s.Config.ChannelDefaults.Private); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-secret",
		&s.Config.ChannelDefaults.Secret); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-invite-only",
		&s.Config.ChannelDefaults.InviteOnly); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-topic-op-only",
		&s.Config.ChannelDefaults.TopicOpsOnly); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-no-outside-msg",
		&s.Config.ChannelDefaults.NoOutsideMsg); err != nil {
		return err
	}
	if err := parseBool(configMap, "default-moderated",
		&s.Config.ChannelDefaults.Moderated); err != nil {
		return err
	}

	if v, exists := configMap["admin-location-1"]; exists {
		s.Config.AdminLocation1 = v
	}
	if v, exists := configMap["admin-location-2"]; exists {
		s.Config.AdminLocation2 = v
	}
	if v, exists := configMap["admin-mail"]; exists {
		s.Config.AdminMail = v
	}

	if v, exists := configMap["server-info"]; exists {
		s.Config.ServerInfos = nil
		for _, line := range strings.Split(v, ";") {
			line = strings.TrimSpace(line)
			if len(line) == 0 {
				continue
			}
			s.Config.ServerInfos = append(s.Config.ServerInfos, line)
		}
	}

	return nil
}

func parseBool(configMap map[string]string, key string, out *bool) error {
	v, exists := configMap[key]
	if !exists {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s is not valid: %s", key, err)
	}
	*out = b
	return nil
}

func parseInt(configMap map[string]string, key string, out *int) error {
	v, exists := configMap[key]
	if !exists {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s is not valid: %s", key, err)
	}
	if n < 1 {
		return fmt.Errorf("%s must be positive", key)
	}
	*out = n
	return nil
}

func parseDuration(configMap map[string]string, key string,
	out *time.Duration) error {
	v, exists := configMap[key]
	if !exists {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s is in invalid format: %s", key, err)
	}
	*out = d
	return nil
}
