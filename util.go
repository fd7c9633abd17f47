package main

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// Arbitrary. Something low enough we won't hit message limit.
const maxTopicLength = 300

// canonicalizeNick converts the given nick to its canonical representation
// (which must be unique).
//
// Note: We don't check validity or strip whitespace.
func canonicalizeNick(n string) string {
	return strings.ToLower(n)
}

// canonicalizeChannel converts the given channel to its canonical
// representation (which must be unique).
//
// Note: We don't check validity or strip whitespace.
func canonicalizeChannel(c string) string {
	return strings.ToLower(c)
}

// splitTargets expands a comma separated argument into individual targets.
// JOIN/PART/NAMES/LIST/PRIVMSG/NOTICE take target lists in this form.
func splitTargets(s string) []string {
	var targets []string
	for _, piece := range strings.Split(s, ",") {
		piece = strings.TrimSpace(piece)
		if len(piece) == 0 {
			continue
		}
		targets = append(targets, piece)
	}
	return targets
}

// makeAnonNick crafts a placeholder nickname for a connection that has not
// yet sent NICK. The id makes it unique for the process lifetime.
func makeAnonNick(id uint64) string {
	return fmt.Sprintf("Anon_%x", id)
}

// makePingToken crafts the token we challenge clients with. They must echo
// it back in PONG.
func makePingToken() string {
	return fmt.Sprintf("ping_%x", rand.Uint32())
}

// matchesMask checks a nick!user@host string against a ban style mask. Masks
// may contain * and ? wildcards.
func matchesMask(mask, uhost string) bool {
	re, err := maskToRegexp(mask)
	if err != nil {
		return false
	}
	return re.MatchString(uhost)
}

func maskToRegexp(mask string) (*regexp.Regexp, error) {
	pattern := "^"
	for _, c := range mask {
		switch c {
		case '*':
			pattern += ".*"
		case '?':
			pattern += "."
		default:
			pattern += regexp.QuoteMeta(string(c))
		}
	}
	pattern += "$"
	return regexp.Compile("(?i)" + pattern)
}
