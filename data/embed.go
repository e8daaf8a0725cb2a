package data

import _ "embed"

//go:embed help.en.template
var HelpTemplate string

//go:embed modes.en.json
var ModesJSON []byte

//go:embed phrases.en.json
var PhrasesJSON []byte
