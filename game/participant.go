package game

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Participant is the member who issued a command.
type Participant struct {
	*discordgo.Member
}

func NewParticipant(m *discordgo.Member) *Participant {
	return &Participant{Member: m}
}

func (p *Participant) DisplayName() string {
	switch {
	case p == nil || p.Member == nil:
		return "unknown"
	case p.Nick != "":
		return p.Nick
	case p.User != nil && p.User.GlobalName != "":
		return p.User.GlobalName
	case p.User != nil:
		return p.User.Username
	}

	return "unknown"
}

func (p *Participant) Mention() string {
	if p == nil || p.Member == nil || p.User == nil {
		return p.DisplayName()
	}

	return fmt.Sprintf("<@%v>", p.User.ID)
}

func (p *Participant) DisplayFullName() string {
	if p == nil || p.Member == nil || p.User == nil {
		return p.DisplayName()
	}

	return fmt.Sprintf("%v (%v)", p.DisplayName(), p.User.Username)
}
