package cmd

import (
	"fmt"
	"regexp"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/bitheroes-hg-rounds/data"
	"github.com/deadloct/bitheroes-hg-rounds/settings"
)

const (
	CommandPrefix                 = "hg-"
	CommandHelp                   = CommandPrefix + "help"
	CommandStart                  = CommandPrefix + "start"
	CommandStartOptionMode        = "mode"
	CommandStartOptionPrefix      = "prefix"
	CommandStartOptionAutoAdvance = "auto-advance"
	CommandStartOptionStartRound  = "start-round"
	CommandRound                  = CommandPrefix + "round"
	CommandNext                   = CommandPrefix + "next"
	CommandPrevious               = CommandPrefix + "previous"
	CommandFirst                  = CommandPrefix + "first"
	CommandGoto                   = CommandPrefix + "goto"
	CommandGotoOptionRound        = "round"
	CommandEnd                    = CommandPrefix + "end"
	CommandStatus                 = CommandPrefix + "status"
	CommandCancel                 = CommandPrefix + "cancel"

	// Discord allows at most 25 choices per option.
	maxChoices = 25
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^\p{L}\p{N}_\.\[\]:# -]+`)

	roundMinValue float64 = 1
)

// Commands returns the slash commands, offering modes as choices for start.
func Commands(modes []*data.Mode) []*discordgo.ApplicationCommand {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for i, mode := range modes {
		if i == maxChoices {
			break
		}

		name := mode.Name
		if name == "" {
			name = mode.ID
		}

		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: mode.ID,
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandHelp,
			Description: "Explains how to use this bot",
		},
		{
			Name:        CommandStart,
			Description: "Starts a sequence of rounds in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        CommandStartOptionMode,
					Description: fmt.Sprintf("The set of rounds to play. Default: %v", settings.DefaultMode),
					Required:    false,
					Choices:     choices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        CommandStartOptionPrefix,
					Description: "Text shown before the round number. Default: set by the mode",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        CommandStartOptionAutoAdvance,
					Description: "Begin the next round as soon as one ends",
					Required:    false,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        CommandStartOptionStartRound,
					Description: "The round number to open with. Default: 1",
					Required:    false,
					MinValue:    &roundMinValue,
				},
			},
		},
		{
			Name:        CommandRound,
			Description: "Announce the current round again",
		},
		{
			Name:        CommandNext,
			Description: "Begin the next round",
		},
		{
			Name:        CommandPrevious,
			Description: "Begin the previous round",
		},
		{
			Name:        CommandFirst,
			Description: "Begin the first round",
		},
		{
			Name:        CommandGoto,
			Description: "Begin a specific round",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        CommandGotoOptionRound,
					Description: "Round number. Numbers past either end go to the nearest round",
					Required:    true,
				},
			},
		},
		{
			Name:        CommandEnd,
			Description: "End the current round",
		},
		{
			Name:        CommandStatus,
			Description: "Show the current round",
		},
		{
			Name:        CommandCancel,
			Description: "Cancel the game in this channel",
		},
	}
}

func sanitize(str string) string {
	return nonAlphanumericRegex.ReplaceAllString(str, "")
}
