package game

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/deadloct/bitheroes-hg-rounds/data"
)

type senderRegistry struct {
	senders map[string]*BufferSender
	sync.Mutex
}

func (r *senderRegistry) factory(channel string) Sender {
	r.Lock()
	defer r.Unlock()

	if r.senders == nil {
		r.senders = make(map[string]*BufferSender)
	}

	if _, ok := r.senders[channel]; !ok {
		r.senders[channel] = &BufferSender{}
	}

	return r.senders[channel]
}

func testManager(t *testing.T) (*Manager, *senderRegistry, *countingRecorder) {
	t.Helper()

	modes, err := data.LoadModes(data.ModesJSON)
	if err != nil {
		t.Fatal(err)
	}

	modes = append(modes, testMode())
	reg := &senderRegistry{}
	rec := &countingRecorder{}

	return NewManager(ManagerConfig{
		Modes:              modes,
		NewSender:          reg.factory,
		PhraseData:         data.PhrasesJSON,
		Recorder:           rec,
		DefaultLabelPrefix: "Level ",
	}), reg, rec
}

func TestManager_StartGame(t *testing.T) {
	m, reg, rec := testManager(t)

	if err := m.StartGame(GameStartConfig{Channel: "1", ModeID: "test"}); err != nil {
		t.Fatal(err)
	}

	if m.CanStart("1") {
		t.Error("should not be able to start a second game in the same channel")
	}

	err := m.StartGame(GameStartConfig{Channel: "1", ModeID: "test"})
	if !errors.Is(err, ErrGameExists) {
		t.Errorf("expected ErrGameExists but got %v", err)
	}

	if !reg.senders["1"].Contains("already a game running") {
		t.Error("expected the channel to be told a game is running")
	}

	if err := m.StartGame(GameStartConfig{Channel: "2", ModeID: "hunger-games"}); err != nil {
		t.Fatal(err)
	}

	if m.ActiveGames() != 2 || rec.active != 2 {
		t.Errorf("expected 2 active games but got %v (recorded %v)", m.ActiveGames(), rec.active)
	}
}

func TestManager_UnknownMode(t *testing.T) {
	m, _, _ := testManager(t)

	err := m.StartGame(GameStartConfig{Channel: "1", ModeID: "nope"})
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("expected ErrUnknownMode but got %v", err)
	}

	if m.ActiveGames() != 0 {
		t.Errorf("expected no games but got %v", m.ActiveGames())
	}
}

func TestManager_RunForgetsFinishedGames(t *testing.T) {
	m, _, rec := testManager(t)
	auto := true

	if err := m.StartGame(GameStartConfig{Channel: "1", ModeID: "test", AutoAdvance: &auto}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := m.Run("1", (*Game).End); err != nil {
			t.Fatalf("end %v: %v", i, err)
		}
	}

	if _, ok := m.Game("1"); ok {
		t.Error("expected the finished game to be forgotten")
	}

	if rec.active != 0 {
		t.Errorf("expected 0 active games recorded but got %v", rec.active)
	}

	if err := m.Run("1", (*Game).Next); !errors.Is(err, ErrNoGame) {
		t.Errorf("expected ErrNoGame but got %v", err)
	}

	if !m.CanStart("1") {
		t.Error("expected a new game to be allowed after the last one finished")
	}
}

func TestManager_EndGame(t *testing.T) {
	m, _, rec := testManager(t)
	m.StartGame(GameStartConfig{Channel: "1", ModeID: "test"})
	g, _ := m.Game("1")

	if !m.EndGame("1") {
		t.Fatal("expected a game to end")
	}

	if m.EndGame("1") {
		t.Error("expected no game to end the second time")
	}

	if g.State() != Cancelled {
		t.Errorf("expected the game to be cancelled but it is %v", g.State())
	}

	if rec.active != 0 {
		t.Errorf("expected 0 active games recorded but got %v", rec.active)
	}
}

func TestManager_LabelPrefix(t *testing.T) {
	tests := map[string]struct {
		Mode     *data.Mode
		Prefix   string
		Expected string
	}{
		"command prefix wins": {Prefix: "Heat ", Expected: "Heat 1"},
		"mode prefix":         {Expected: "Round 1"},
		"manager default":     {Mode: &data.Mode{ID: "bare", Rounds: []*data.Round{{ID: "x"}}}, Expected: "Level 1"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m, reg, _ := testManager(t)
			modeID := "test"
			if test.Mode != nil {
				m.Modes = append(m.Modes, test.Mode)
				modeID = test.Mode.ID
			}

			if err := m.StartGame(GameStartConfig{Channel: "1", ModeID: modeID, LabelPrefix: test.Prefix}); err != nil {
				t.Fatal(err)
			}

			titles := reg.senders["1"].Titles()
			if len(titles) != 1 || titles[0] != test.Expected {
				t.Errorf("expected label %v but got %v", test.Expected, titles)
			}
		})
	}
}

func TestChunkLines(t *testing.T) {
	long := strings.Repeat("word ", 10)

	tests := map[string]struct {
		Input    string
		Max      int
		Expected []string
	}{
		"empty":       {Input: "", Max: 10, Expected: nil},
		"fits":        {Input: "a\nb", Max: 10, Expected: []string{"a\nb"}},
		"packs lines": {Input: "aaaa\nbbbb\ncccc", Max: 9, Expected: []string{"aaaa\nbbbb", "cccc"}},
		"long line":   {Input: strings.TrimSpace(long), Max: 10, Expected: []string{"word word", "word word", "word word", "word word", "word word"}},
		"long word":   {Input: "abcdefghij", Max: 4, Expected: []string{"abcd", "efgh", "ij"}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			actual := chunkLines(test.Input, test.Max)
			if strings.Join(actual, "|") != strings.Join(test.Expected, "|") || len(actual) != len(test.Expected) {
				t.Errorf("expected %q but got %q", test.Expected, actual)
			}

			for _, chunk := range actual {
				if len(chunk) > test.Max {
					t.Errorf("chunk %q is longer than %v", chunk, test.Max)
				}
			}
		})
	}
}

func TestBlockQuote(t *testing.T) {
	if actual := blockQuote("a\nb"); actual != "> a\n> b" {
		t.Errorf("expected quoted lines but got %q", actual)
	}
}
