package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/deadloct/bitheroes-hg-rounds/cmd"
	"github.com/deadloct/bitheroes-hg-rounds/data"
	"github.com/deadloct/bitheroes-hg-rounds/game"
	"github.com/deadloct/bitheroes-hg-rounds/metrics"
	"github.com/deadloct/bitheroes-hg-rounds/settings"
	log "github.com/sirupsen/logrus"
)

func main() {
	settings.LoadEnvFiles()

	cfg, err := settings.LoadConfig()
	if err != nil {
		log.Panic(err)
	}

	log.SetLevel(settings.ParseLogLevel(cfg.LogLevel))
	log.Debug("verbose logs enabled")

	modes, err := data.LoadModesFile(cfg.ModesFile)
	if err != nil {
		log.Panic(err)
	}
	log.Infof("loaded %v modes", len(modes))

	session, err := discordgo.New("Bot " + cfg.AuthToken)
	if err != nil {
		log.Panic(err)
	}

	m := metrics.New(settings.MetricsNamespace)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(cfg.MetricsAddr); err != nil {
				log.Errorf("metrics server stopped: %v", err)
			}
		}()
	}

	games := game.NewManager(game.ManagerConfig{
		Modes: modes,
		NewSender: func(channelID string) game.Sender {
			return game.NewDiscordSender(session, channelID)
		},
		PhraseData:         data.PhrasesJSON,
		Recorder:           m,
		DefaultLabelPrefix: cfg.DefaultLabelPrefix,
		AutoAdvance:        cfg.AutoAdvance,
		DoubleStruckLabel:  cfg.DoubleStruckLabel,
	})

	commands := cmd.NewManager(games, modes, data.HelpTemplate)

	session.Identify.Intents = discordgo.IntentGuilds
	session.AddHandler(commands.CommandHandler)
	if err := session.Open(); err != nil {
		log.Panic(err)
	}
	defer session.Close()

	if err := commands.DeregisterCommands(session); err != nil {
		log.Warnf("could not clear old commands: %v", err)
	}

	if err := commands.RegisterCommands(session); err != nil {
		log.Panic(err)
	}

	log.Info("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info("Bot exiting...")
}
