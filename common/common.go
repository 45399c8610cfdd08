// Package common contains small helpers shared by every other package.
package common

// Version is the bot's version, set at build time with -ldflags.
var Version = "[unknown]"
