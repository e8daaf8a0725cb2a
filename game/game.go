package game

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/deadloct/bitheroes-hg-rounds/data"
	"github.com/deadloct/bitheroes-hg-rounds/rounds"
	"github.com/deadloct/bitheroes-hg-rounds/settings"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type GameState int

const (
	NotStarted GameState = iota
	Started
	Finished
	Cancelled
)

func (s GameState) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Started:
		return "started"
	case Finished:
		return "finished"
	case Cancelled:
		return "cancelled"
	}

	return fmt.Sprintf("GameState(%d)", int(s))
}

var (
	ErrNotStarted = errors.New("game has not started")
	ErrGameOver   = errors.New("game is over")
)

type PhraseGenerator interface {
	GetRandomPhrase(host, round string) string
}

// Recorder receives game and round counts.
type Recorder interface {
	RoundBegun(mode string)
	RoundEnded(mode string)
	GameFinished(mode, outcome string)
	SetActiveGames(n int)
}

type nopRecorder struct{}

func (nopRecorder) RoundBegun(string)           {}
func (nopRecorder) RoundEnded(string)           {}
func (nopRecorder) GameFinished(string, string) {}
func (nopRecorder) SetActiveGames(int)          {}

type GameConfig struct {
	ChannelID         string
	Mode              *data.Mode
	LabelPrefix       string // overrides Mode.LabelPrefix when set
	AutoAdvance       bool
	DoubleStruckLabel bool
	StartRound        int // 0-based
	PhraseGenerator   PhraseGenerator
	Recorder          Recorder
	Sender            Sender
	StartedBy         *Participant
}

// RoundValues is what round intro and outro templates are rendered with.
type RoundValues struct {
	Label     string
	Number    int
	Total     int
	Round     *data.Round
	Mode      *data.Mode
	StartedBy string
}

type roundTemplates struct {
	intro *template.Template
	outro *template.Template
}

// Game plays one mode's rounds in one channel.
type Game struct {
	GameConfig

	id        string
	state     GameState
	seq       *rounds.Sequencer[*data.Round]
	label     *ChannelLabel
	intro     *template.Template
	templates map[*data.Round]roundTemplates
	logger    *log.Entry

	sync.Mutex
}

func NewGame(cfg GameConfig) (*Game, error) {
	if cfg.Mode == nil {
		return nil, ErrUnknownMode
	}

	if len(cfg.Mode.Rounds) == 0 {
		return nil, fmt.Errorf("mode %q: %w", cfg.Mode.ID, data.ErrNoRounds)
	}

	if cfg.Sender == nil {
		return nil, errors.New("game needs a sender")
	}

	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}

	if cfg.LabelPrefix == "" {
		cfg.LabelPrefix = cfg.Mode.LabelPrefix
	}

	g := &Game{
		GameConfig: cfg,
		id:         uuid.NewString(),
		templates:  make(map[*data.Round]roundTemplates, len(cfg.Mode.Rounds)),
	}

	g.logger = log.WithFields(log.Fields{
		"game_id": g.id,
		"channel": cfg.ChannelID,
		"mode":    cfg.Mode.ID,
	})

	var err error
	if g.intro, err = parseTemplate(cfg.Mode.ID+"-intro", cfg.Mode.Intro); err != nil {
		return nil, err
	}

	for i, r := range cfg.Mode.Rounds {
		var t roundTemplates
		if t.intro, err = parseTemplate(fmt.Sprintf("%v-%v-intro", cfg.Mode.ID, i), r.Intro); err != nil {
			return nil, err
		}
		if t.outro, err = parseTemplate(fmt.Sprintf("%v-%v-outro", cfg.Mode.ID, i), r.Outro); err != nil {
			return nil, err
		}
		g.templates[r] = t
	}

	g.label = NewChannelLabel(cfg.Sender, cfg.DoubleStruckLabel, g.logger)
	g.seq = rounds.New(cfg.Mode.Rounds,
		rounds.WithLabel(g.label),
		rounds.WithLabelPrefix(cfg.LabelPrefix),
		rounds.WithLogger(g.logger),
	)

	g.seq.OnRoundBegin().Subscribe(g.roundBegun)
	g.seq.OnRoundEnd().Subscribe(g.roundEnded)
	g.seq.OnFinalRoundEnd().Subscribe(g.finalRoundEnded)

	return g, nil
}

func parseTemplate(name, src string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse template %v: %w", name, err)
	}

	return tmpl, nil
}

func (g *Game) ID() string {
	return g.id
}

// Start sends the mode intro and begins the configured start round.
func (g *Game) Start() error {
	g.Lock()
	defer g.Unlock()

	if g.state != NotStarted {
		return fmt.Errorf("game %v is %v: %w", g.id, g.state, ErrGameOver)
	}

	intro, err := g.render(g.intro)
	if err != nil {
		return err
	}

	g.logMessage(log.InfoLevel, "starting game with %v", settings.FormatRoundCount(g.seq.Len()))
	if intro != "" {
		if _, err := g.Sender.SendNormal(intro); err != nil {
			return err
		}
	}

	g.state = Started
	g.seq.BeginRoundAt(g.StartRound)
	return nil
}

func (g *Game) Replay() error {
	return g.do(func() { g.seq.BeginRound() })
}

func (g *Game) Next() error {
	return g.do(func() { g.seq.BeginNextRound() })
}

func (g *Game) Previous() error {
	return g.do(func() { g.seq.BeginPreviousRound() })
}

func (g *Game) First() error {
	return g.do(func() { g.seq.BeginFirstRound() })
}

// Goto begins the round at index, moved to the nearest end when out of range.
func (g *Game) Goto(index int) error {
	return g.do(func() { g.seq.BeginRoundAt(index) })
}

// End ends the current round. Ending the last round finishes the game.
func (g *Game) End() error {
	return g.do(func() { g.seq.EndRound() })
}

func (g *Game) Cancel() {
	g.Lock()
	defer g.Unlock()

	if g.state == Finished || g.state == Cancelled {
		return
	}

	g.logMessage(log.InfoLevel, "cancelling game on round %v", g.seq.Index()+1)
	g.state = Cancelled
	g.Recorder.GameFinished(g.Mode.ID, "cancelled")
}

func (g *Game) do(action func()) error {
	g.Lock()
	defer g.Unlock()

	switch g.state {
	case NotStarted:
		return ErrNotStarted
	case Finished, Cancelled:
		return fmt.Errorf("game %v is %v: %w", g.id, g.state, ErrGameOver)
	}

	action()
	return nil
}

func (g *Game) State() GameState {
	g.Lock()
	defer g.Unlock()

	return g.state
}

func (g *Game) IsRunning() bool {
	g.Lock()
	defer g.Unlock()

	// Not Started is a waiting game, so it counts as "running"
	return g.state == Started || g.state == NotStarted
}

// RoundIndex returns the 0-based index of the current round.
func (g *Game) RoundIndex() int {
	g.Lock()
	defer g.Unlock()

	return g.seq.Index()
}

func (g *Game) Status() string {
	g.Lock()
	defer g.Unlock()

	current := g.seq.Current()
	label := rounds.FormatLabel(g.LabelPrefix, g.seq.Index())

	lines := []string{
		fmt.Sprintf("**%v** is %v.", g.Mode.Name, g.state),
		fmt.Sprintf("%v of %v: %v", label, g.seq.Len(), current.Name),
	}

	if g.seq.Active() {
		lines = append(lines, "The round is in progress.")
	} else if g.state == Started {
		lines = append(lines, "Waiting for the next round.")
	}

	return strings.Join(lines, "\n")
}

func (g *Game) roundBegun(r *data.Round) {
	g.Recorder.RoundBegun(g.Mode.ID)

	text, err := g.render(g.templates[r].intro)
	if err != nil {
		g.logMessage(log.ErrorLevel, "failed to render intro for round %v: %v", g.seq.Index()+1, err)
		return
	}

	if text == "" {
		return
	}

	host := settings.GetEmoji(settings.EmojiRoundBegin).EmojiCode()
	if _, err := g.Sender.SendNormal(strings.TrimSpace(host + "  " + text)); err != nil {
		g.logMessage(log.WarnLevel, "failed to send intro for round %v: %v", g.seq.Index()+1, err)
	}
}

func (g *Game) roundEnded(r *data.Round) {
	g.Recorder.RoundEnded(g.Mode.ID)

	lines := g.outroLines(r)
	if g.PhraseGenerator != nil {
		lines = append(lines, settings.WhiteSpaceChar, g.PhraseGenerator.GetRandomPhrase(g.hostName(), g.seq.Label()))
	}

	if len(lines) > 0 {
		if _, err := g.Sender.SendNormal(strings.Join(lines, "\n")); err != nil {
			g.logMessage(log.WarnLevel, "failed to send outro for round %v: %v", g.seq.Index()+1, err)
		}
	}

	if g.AutoAdvance {
		g.seq.BeginNextRound()
	}
}

func (g *Game) finalRoundEnded() {
	g.Recorder.RoundEnded(g.Mode.ID)

	lines := g.outroLines(g.seq.Current())
	victory := settings.GetEmoji(settings.EmojiVictory).EmojiCode()
	lines = append(lines,
		settings.BlankLine,
		strings.TrimSpace(fmt.Sprintf("%v  **%v** has concluded after %v.", victory, g.Mode.Name, settings.FormatRoundCount(g.seq.Len()))),
	)

	if g.StartedBy != nil {
		lines = append(lines, fmt.Sprintf("Thank you to %v for hosting.", g.StartedBy.Mention()))
	}

	if _, err := g.Sender.SendNormal(strings.Join(lines, "\n")); err != nil {
		g.logMessage(log.WarnLevel, "failed to send final message: %v", err)
	}

	g.state = Finished
	g.Recorder.GameFinished(g.Mode.ID, "finished")
	g.logMessage(log.InfoLevel, "game finished")
}

func (g *Game) outroLines(r *data.Round) []string {
	text, err := g.render(g.templates[r].outro)
	if err != nil {
		g.logMessage(log.ErrorLevel, "failed to render outro for round %v: %v", g.seq.Index()+1, err)
		return nil
	}

	if text == "" {
		return nil
	}

	return []string{text}
}

func (g *Game) render(tmpl *template.Template) (string, error) {
	var round *data.Round
	if g.seq.Len() > 0 {
		round = g.seq.Current()
	}

	vals := RoundValues{
		Label:     rounds.FormatLabel(g.LabelPrefix, g.seq.Index()),
		Number:    g.seq.Index() + 1,
		Total:     g.seq.Len(),
		Round:     round,
		Mode:      g.Mode,
		StartedBy: g.StartedBy.DisplayName(),
	}

	var result bytes.Buffer
	if err := tmpl.Execute(&result, vals); err != nil {
		return "", err
	}

	return result.String(), nil
}

func (g *Game) hostName() string {
	if code := settings.GetEmoji(settings.EmojiHost).EmojiCode(); code != "" {
		return code
	}

	return "Caesar Flickerman"
}

func (g *Game) logMessage(level log.Level, msg string, args ...interface{}) {
	g.logger.Logf(level, msg, args...)
}
