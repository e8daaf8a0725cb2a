package cmd

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/bitheroes-hg-rounds/data"
	"github.com/deadloct/bitheroes-hg-rounds/game"
	"github.com/deadloct/bitheroes-hg-rounds/settings"
	log "github.com/sirupsen/logrus"
)

// Games is the part of game.Manager the command handler drives.
type Games interface {
	StartGame(cfg game.GameStartConfig) error
	Run(channel string, action func(*game.Game) error) error
	EndGame(channel string) bool
}

type Manager struct {
	games Games
	modes []*data.Mode
	help  string
}

func NewManager(games Games, modes []*data.Mode, help string) *Manager {
	return &Manager{games: games, modes: modes, help: help}
}

func (m *Manager) RegisterCommands(session *discordgo.Session) error {
	log.Info("registering commands")

	for _, v := range Commands(m.modes) {
		if _, err := session.ApplicationCommandCreate(session.State.User.ID, "", v); err != nil {
			log.Errorf("error creating command %v: %v", v.Name, err)
			return err
		}

		log.Infof("registered command %v", v.Name)
	}

	log.Info("finished registering commands")

	return nil
}

func (m *Manager) DeregisterCommands(session *discordgo.Session) error {
	existingCommands, err := session.ApplicationCommands(session.State.User.ID, "")
	if err != nil {
		log.Errorf("could not retrieve existing commands: %v", err)
		return err
	}

	log.Info("deregistering commands")

	for _, v := range existingCommands {
		log.Infof("deregistering command %v", v.Name)
		if err := session.ApplicationCommandDelete(session.State.User.ID, "", v.ID); err != nil {
			log.Infof("failed to deregister command %v: %v", v.Name, err)
			continue
		}

		log.Infof("deregistered command %v", v.Name)
	}

	log.Info("finished deregistering commands")
	return nil
}

func (m *Manager) CommandHandler(session *discordgo.Session, ic *discordgo.InteractionCreate) {
	if ic.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if ic.Member == nil {
		log.Infof("user attempted to run the bot from outside a channel: %v", ic.User.ID)
		content := "Rounds can only be run from a channel."

		err := session.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Content: content},
		})

		if err != nil {
			log.Errorf("error when user attempted to run commands outside a channel: %v", err)
		}

		return
	}

	session.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: "> Command acknowledged."},
	})

	startedBy := game.NewParticipant(ic.Member)
	name := ic.ApplicationCommandData().Name
	log.Infof("%v issued command %v", startedBy.DisplayFullName(), name)

	reply := m.handle(ic.ChannelID, name, ic.ApplicationCommandData().Options, startedBy)
	for _, msg := range reply {
		if _, err := session.ChannelMessageSend(ic.ChannelID, msg); err != nil {
			log.Errorf("error replying to command %v: %v", name, err)
		}
	}
}

// handle runs a command and returns the messages to post in the channel.
// Game announcements go through the game's own sender.
func (m *Manager) handle(channel, name string, options []*discordgo.ApplicationCommandInteractionDataOption, startedBy *game.Participant) []string {
	switch name {
	case CommandHelp:
		return []string{m.help}

	case CommandStart:
		cfg, warnings := parseStartOptions(options)
		cfg.Channel = channel
		cfg.StartedBy = startedBy

		if err := m.games.StartGame(cfg); err != nil {
			log.Errorf("error starting game: %v", err)
		}

		return warnings

	case CommandRound:
		return m.run(channel, (*game.Game).Replay)

	case CommandNext:
		return m.run(channel, (*game.Game).Next)

	case CommandPrevious:
		return m.run(channel, (*game.Game).Previous)

	case CommandFirst:
		return m.run(channel, (*game.Game).First)

	case CommandGoto:
		round := 1
		for _, option := range options {
			if option.Name == CommandGotoOptionRound {
				round = int(option.IntValue())
			}
		}

		return m.run(channel, func(g *game.Game) error {
			return g.Goto(settings.DisplayRound(round))
		})

	case CommandEnd:
		return m.run(channel, (*game.Game).End)

	case CommandStatus:
		var status string
		reply := m.run(channel, func(g *game.Game) error {
			status = g.Status()
			return nil
		})
		if status != "" {
			return []string{quote(status)}
		}

		return reply

	case CommandCancel:
		if !m.games.EndGame(channel) {
			return []string{noGameMessage}
		}

		return []string{"> The Gamemakers have cancelled the games in this channel."}
	}

	log.Warnf("unknown command %v", name)
	return nil
}

const noGameMessage = "> There is no game running in this channel. Use `/" + CommandStart + "` to start one."

func (m *Manager) run(channel string, action func(*game.Game) error) []string {
	err := m.games.Run(channel, action)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrNoGame):
		return []string{noGameMessage}
	case errors.Is(err, game.ErrGameOver):
		return []string{"> The game in this channel is over."}
	case errors.Is(err, game.ErrNotStarted):
		return []string{"> The game in this channel has not started yet."}
	}

	log.Errorf("error running command in channel %v: %v", channel, err)
	return []string{"> There was an unexpected error."}
}

func parseStartOptions(options []*discordgo.ApplicationCommandInteractionDataOption) (game.GameStartConfig, []string) {
	cfg := game.GameStartConfig{ModeID: settings.DefaultMode}
	var warnings []string

	for _, option := range options {
		switch option.Name {
		case CommandStartOptionMode:
			if v := option.StringValue(); v != "" {
				cfg.ModeID = v
			}

		case CommandStartOptionPrefix:
			v := sanitize(option.StringValue())
			if v != option.StringValue() {
				msg := fmt.Sprintf("> Some characters were removed from the prefix. Using %q instead.", v)
				warnings = append(warnings, msg)
				log.Warn(msg)
			}
			cfg.LabelPrefix = v

		case CommandStartOptionAutoAdvance:
			v := option.BoolValue()
			cfg.AutoAdvance = &v

		case CommandStartOptionStartRound:
			v := int(option.IntValue())
			if v < 1 {
				msg := fmt.Sprintf("> Round %v does not exist. Starting with round 1 instead.", v)
				warnings = append(warnings, msg)
				log.Warn(msg)
				v = 1
			}
			cfg.StartRound = settings.DisplayRound(v)
		}
	}

	return cfg, warnings
}

func quote(str string) string {
	return ">>> " + str
}
