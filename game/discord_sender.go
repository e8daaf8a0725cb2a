package game

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/bitheroes-hg-rounds/settings"
	log "github.com/sirupsen/logrus"
)

type Sender interface {
	SendNormal(str string) (*discordgo.Message, error)
	SendEmbed(title, body string) (*discordgo.Message, error)
}

type DiscordSender struct {
	channelID string
	session   *discordgo.Session
}

func NewDiscordSender(session *discordgo.Session, channelID string) *DiscordSender {
	return &DiscordSender{
		channelID: channelID,
		session:   session,
	}
}

// SendNormal sends str block-quoted, split into as many messages as Discord's
// length limit requires. The last message sent is returned.
func (s *DiscordSender) SendNormal(str string) (*discordgo.Message, error) {
	var (
		msg  *discordgo.Message
		errs []error
	)

	for _, chunk := range chunkLines(blockQuote(str), settings.DiscordMaxMessageLength) {
		log.Tracef("sending message of length %v", len(chunk))
		m, err := s.session.ChannelMessageSend(s.channelID, chunk)
		if err != nil {
			log.Errorf("error sending message of length %v: %v", len(chunk), err)
			errs = append(errs, err)
			continue
		}

		msg = m
	}

	return msg, errors.Join(errs...)
}

// SendEmbed sends one embed per chunk of body. Only the first carries title.
func (s *DiscordSender) SendEmbed(title, body string) (*discordgo.Message, error) {
	chunks := chunkLines(body, settings.DiscordMaxMessageLength)
	if len(chunks) == 0 {
		chunks = []string{""}
	}

	var (
		msg  *discordgo.Message
		errs []error
	)

	for i, chunk := range chunks {
		embed := &discordgo.MessageEmbed{Description: chunk}
		if i == 0 {
			embed.Title = title
		}

		m, err := s.session.ChannelMessageSendEmbed(s.channelID, embed)
		if err != nil {
			log.Errorf("error sending embed of length %v: %v", len(chunk), err)
			errs = append(errs, err)
			continue
		}

		msg = m
	}

	return msg, errors.Join(errs...)
}

// chunkLines packs whole lines into chunks of at most max bytes. Lines that
// are too long on their own are split on word boundaries, and words that are
// still too long are cut.
func chunkLines(str string, max int) []string {
	if str == "" {
		return nil
	}

	var (
		chunks  []string
		payload string
	)

	flush := func() {
		if payload != "" {
			chunks = append(chunks, payload)
			payload = ""
		}
	}

	add := func(piece, sep string) {
		if payload != "" && len(payload)+len(sep)+len(piece) > max {
			flush()
		}

		if payload == "" {
			payload = piece
			return
		}

		payload += sep + piece
	}

	for _, line := range strings.Split(str, "\n") {
		if len(line) <= max {
			add(line, "\n")
			continue
		}

		flush()
		for _, word := range strings.Fields(line) {
			for len(word) > max {
				add(word[:max], " ")
				word = word[max:]
			}
			add(word, " ")
		}
		flush()
	}

	flush()
	return chunks
}

func blockQuote(str string) string {
	lines := strings.Split(str, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}

	return strings.Join(lines, "\n")
}
