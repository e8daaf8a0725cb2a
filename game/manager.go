package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/deadloct/bitheroes-hg-rounds/data"
	"github.com/deadloct/bitheroes-hg-rounds/lib"
	log "github.com/sirupsen/logrus"
)

var (
	ErrGameExists  = errors.New("a game is already running in this channel")
	ErrNoGame      = errors.New("no game in this channel")
	ErrUnknownMode = errors.New("unknown mode")
)

type SenderFactory func(channelID string) Sender

type ManagerConfig struct {
	Modes              []*data.Mode
	NewSender          SenderFactory
	PhraseData         []byte
	Recorder           Recorder
	DefaultLabelPrefix string
	AutoAdvance        bool
	DoubleStruckLabel  bool
}

type GameStartConfig struct {
	Channel     string
	ModeID      string
	LabelPrefix string
	AutoAdvance *bool // nil uses the manager default
	StartRound  int   // 0-based
	StartedBy   *Participant
}

type Manager struct {
	ManagerConfig

	games map[string]*Game // maps channel ID to games; one allowed per channel at a time
	sync.Mutex
}

func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}

	return &Manager{
		ManagerConfig: cfg,
		games:         make(map[string]*Game),
	}
}

func (m *Manager) StartGame(cfg GameStartConfig) error {
	sender := m.NewSender(cfg.Channel)

	mode, ok := data.FindMode(m.Modes, cfg.ModeID)
	if !ok {
		log.Warnf("unknown mode %q requested in channel %v", cfg.ModeID, cfg.Channel)
		sender.SendNormal(fmt.Sprintf("There is no mode called %q.", cfg.ModeID))
		return fmt.Errorf("%w: %q", ErrUnknownMode, cfg.ModeID)
	}

	autoAdvance := m.AutoAdvance
	if cfg.AutoAdvance != nil {
		autoAdvance = *cfg.AutoAdvance
	}

	prefix := cfg.LabelPrefix
	if prefix == "" && mode.LabelPrefix == "" {
		prefix = m.DefaultLabelPrefix
	}

	var phrases PhraseGenerator
	if len(m.PhraseData) > 0 {
		jp, err := lib.NewJSONPhrases(m.PhraseData)
		if err != nil {
			log.Warnf("unable to load phrases: %v", err)
		} else {
			phrases = jp
		}
	}

	g, err := NewGame(GameConfig{
		ChannelID:         cfg.Channel,
		Mode:              mode,
		LabelPrefix:       prefix,
		AutoAdvance:       autoAdvance,
		DoubleStruckLabel: m.DoubleStruckLabel,
		StartRound:        cfg.StartRound,
		PhraseGenerator:   phrases,
		Recorder:          m.Recorder,
		Sender:            sender,
		StartedBy:         cfg.StartedBy,
	})
	if err != nil {
		log.Errorf("error creating game: %v", err)
		sender.SendNormal("There was an unexpected error setting up the game.")
		return err
	}

	if !m.reserve(cfg.Channel, g) {
		log.Errorf("game already running in channel %v", cfg.Channel)
		sender.SendNormal("There is already a game running in this channel, please wait for it to finish or cancel it first.")
		return fmt.Errorf("channel %s: %w", cfg.Channel, ErrGameExists)
	}

	log.Infof("starting game %v (%v) in channel %v", g.ID(), mode.ID, cfg.Channel)
	if err := g.Start(); err != nil {
		log.Errorf("error starting game: %v", err)
		sender.SendNormal("There was an unexpected error starting the game.")
		m.remove(cfg.Channel, g)
		return err
	}

	m.reap()
	return nil
}

// Run calls action with the channel's game, then forgets the game if it is
// no longer running.
func (m *Manager) Run(channel string, action func(*Game) error) error {
	g, ok := m.Game(channel)
	if !ok {
		return ErrNoGame
	}

	defer m.reap()
	return action(g)
}

func (m *Manager) Game(channel string) (*Game, bool) {
	m.Lock()
	defer m.Unlock()

	g, ok := m.games[channel]
	return g, ok
}

func (m *Manager) EndGame(channel string) bool {
	m.Lock()
	g, exists := m.games[channel]
	if exists {
		delete(m.games, channel)
	}
	m.Unlock()

	if !exists {
		return false
	}

	log.Infof("ending game in channel %v", channel)
	g.Cancel()
	m.reap()
	return true
}

func (m *Manager) CanStart(channel string) bool {
	m.Lock()
	defer m.Unlock()

	if g, exists := m.games[channel]; exists && g.IsRunning() {
		return false
	}

	return true
}

func (m *Manager) ActiveGames() int {
	m.Lock()
	defer m.Unlock()

	return len(m.games)
}

func (m *Manager) reserve(channel string, g *Game) bool {
	m.Lock()
	defer m.Unlock()

	if existing, exists := m.games[channel]; exists && existing.IsRunning() {
		return false
	}

	m.games[channel] = g
	return true
}

func (m *Manager) remove(channel string, g *Game) {
	m.Lock()
	defer m.Unlock()

	if m.games[channel] == g {
		delete(m.games, channel)
	}

	m.Recorder.SetActiveGames(len(m.games))
}

func (m *Manager) reap() {
	m.Lock()
	defer m.Unlock()

	for channel, g := range m.games {
		if !g.IsRunning() {
			log.Debugf("forgetting %v game %v in channel %v", g.State(), g.ID(), channel)
			delete(m.games, channel)
		}
	}

	m.Recorder.SetActiveGames(len(m.games))
}
