package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTargets(t *testing.T) {
	tests := []struct {
		input  string
		output []string
	}{
		{"#a", []string{"#a"}},
		{"#a,#b", []string{"#a", "#b"}},
		{"#a, #b", []string{"#a", "#b"}},
		{"#a,,#b", []string{"#a", "#b"}},
		{"", nil},
		{",", nil},
	}

	for _, test := range tests {
		assert.Equal(t, test.output, splitTargets(test.input), "input %q",
			test.input)
	}
}

func TestMatchesMask(t *testing.T) {
	tests := []struct {
		mask    string
		uhost   string
		matches bool
	}{
		{"*!*@*", "alice!~alice@example.org", true},
		{"alice!*@*", "alice!~alice@example.org", true},
		{"ALICE!*@*", "alice!~alice@example.org", true},
		{"*!*@example.org", "alice!~alice@example.org", true},
		{"a?ice!*@*", "alice!~alice@example.org", true},
		{"alice", "alice!~alice@example.org", false},
		{"bob!*@*", "alice!~alice@example.org", false},
		{"*!*@example.com", "alice!~alice@example.org", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.matches, matchesMask(test.mask, test.uhost),
			"mask %q against %q", test.mask, test.uhost)
	}
}

func TestMakeAnonNick(t *testing.T) {
	assert.Equal(t, "Anon_0", makeAnonNick(0))
	assert.Equal(t, "Anon_ff", makeAnonNick(255))
	assert.True(t, isValidNick(makeAnonNick(0)))
}

func TestMakePingToken(t *testing.T) {
	token := makePingToken()
	assert.True(t, len(token) > len("ping_"))
	assert.Equal(t, "ping_", token[:5])
}
