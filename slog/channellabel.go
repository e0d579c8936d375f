package slog

import "strings"

// ChannelLabel names a logging channel (e.g. "compile", "solve", "rule").
type ChannelLabel string

const (
	LOGGER_COMPILE ChannelLabel = "compile"
	LOGGER_SOLVE   ChannelLabel = "solve"
	LOGGER_RULE    ChannelLabel = "rule"
)

func (cl ChannelLabel) IsEmpty() bool {
	return strings.TrimSpace(string(cl)) == ""
}

func (cl ChannelLabel) String() string {
	return string(cl)
}

func (cl ChannelLabel) HasMatch(other ChannelLabel) bool {
	return cl == other
}
