package main

import "regexp"

// 16 was the historical limit here. RFC 1459 says 9, but clients in the wild
// regularly exceed that.
const maxNickLength = 16

// 200 characters plus the leading # or &.
const maxChannelLength = 201

var nickRegexp = regexp.MustCompile(
	"^[A-Za-z_\\-\\[\\]\\\\^{}|`][A-Za-z0-9_\\-\\[\\]\\\\^{}|`]*$")

var hostRegexp = regexp.MustCompile(
	"^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?" +
		"(\\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*$")

// isValidNick checks if a nickname is valid.
func isValidNick(n string) bool {
	if len(n) == 0 || len(n) > maxNickLength {
		return false
	}
	return nickRegexp.MatchString(n)
}

// isValidChannel checks a channel name for validity. The name must begin
// with # or & and may not contain whitespace, comma, or BEL.
func isValidChannel(c string) bool {
	if len(c) < 2 || len(c) > maxChannelLength {
		return false
	}

	if c[0] != '#' && c[0] != '&' {
		return false
	}

	for _, char := range c[1:] {
		if char == ' ' || char == ',' || char == 0x07 {
			return false
		}
	}

	return true
}

// isValidHost checks a hostname: dot separated labels of alphanumerics and
// interior hyphens.
func isValidHost(h string) bool {
	if len(h) == 0 {
		return false
	}
	return hostRegexp.MatchString(h)
}
