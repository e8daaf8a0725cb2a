package settings

import "fmt"

type EmojiKey string

type EmojiInfo struct {
	Name     string
	ID       string
	Animated bool
}

func (e EmojiInfo) EmojiCode() string {
	if e.Name == "" || e.ID == "" {
		return ""
	}

	format := "<:%v:%v>"
	if e.Animated {
		format = "<a:%v:%v>"
	}

	return fmt.Sprintf(format, e.Name, e.ID)
}

var (
	EmojiRoundBegin EmojiKey = "RoundBegin"
	EmojiRoundEnd   EmojiKey = "RoundEnd"
	EmojiVictory    EmojiKey = "Victory"
	EmojiHost       EmojiKey = "Host"
)

func emojiFromEnv(name string) EmojiInfo {
	return EmojiInfo{
		Name:     GetenvStr(name + "_EMOJI_NAME"),
		ID:       GetenvStr(name + "_EMOJI_ID"),
		Animated: GetenvBool(name + "_EMOJI_ANIMATED"),
	}
}

// GetEmoji reads the emoji from the environment on every call so values
// loaded by LoadEnvFiles after package init are honoured.
func GetEmoji(key EmojiKey) EmojiInfo {
	switch key {
	case EmojiRoundBegin:
		return emojiFromEnv("ROUND_BEGIN")
	case EmojiRoundEnd:
		return emojiFromEnv("ROUND_END")
	case EmojiVictory:
		return emojiFromEnv("VICTORY")
	case EmojiHost:
		return emojiFromEnv("HOST")
	}

	return EmojiInfo{}
}
