package data

// Mode is one configured sequence of rounds.
type Mode struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Intro       string   `json:"intro"`
	LabelPrefix string   `json:"label-prefix"`
	Rounds      []*Round `json:"rounds"`
}

// Round is the per-round configuration. Intro and Outro are text/template
// sources rendered with game.RoundValues.
type Round struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Intro string `json:"intro"`
	Outro string `json:"outro"`
}
