package settings

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultMode = "hunger-games"

	DiscordMaxMessageLength = 2000

	MetricsNamespace = "hg_rounds"

	WhiteSpaceChar = "\u200b"
	BlankLine      = "_,.-'~'-.,__,.-'~'-.,_"
)

// ParseLogLevel falls back to info for empty or unknown levels.
func ParseLogLevel(level string) log.Level {
	if level == "" {
		return log.InfoLevel
	}

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warnf("unknown log level %q, using info", level)
		return log.InfoLevel
	}

	return lvl
}

// DisplayRound converts a 1-based round number typed by a user into an index.
func DisplayRound(n int) int {
	return n - 1
}

func FormatRoundCount(n int) string {
	if n == 1 {
		return "1 round"
	}

	return fmt.Sprintf("%v rounds", n)
}
