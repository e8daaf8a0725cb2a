package lib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"text/template"

	log "github.com/sirupsen/logrus"
)

var ErrNoPhrases = errors.New("there are no phrases in the phrases data")

type PhraseValues struct {
	Host  string
	Round string
}

// JSONPhrases hands out flavour lines in random order without repeating one
// until every line has been used.
type JSONPhrases struct {
	templateIndexes []int
	templates       []*template.Template
}

func NewJSONPhrases(data []byte) (*JSONPhrases, error) {
	o := &JSONPhrases{}
	if err := o.importJSON(data); err != nil {
		return nil, err
	}

	o.generateTemplateIndexes()
	return o, nil
}

func (jp *JSONPhrases) GetRandomPhrase(host, round string) string {
	defaultPhrase := fmt.Sprintf("%v has ended.", round)

	i, err := GetRandomInt(0, len(jp.templateIndexes))
	if err != nil {
		log.Errorf("could not retrieve random int for picking a phrase: %v", err)
		return defaultPhrase
	}

	var result bytes.Buffer
	tmpl := jp.templates[jp.templateIndexes[i]]
	vals := PhraseValues{
		Host:  host,
		Round: round,
	}
	if err := tmpl.Execute(&result, vals); err != nil {
		log.Errorf("error executing template with vals: %v", err)
		return defaultPhrase
	}

	if len(jp.templateIndexes) == 1 {
		jp.generateTemplateIndexes()
	} else {
		jp.templateIndexes = append(jp.templateIndexes[:i], jp.templateIndexes[i+1:]...)
	}

	return result.String()
}

func (jp *JSONPhrases) PhraseCount() int {
	return len(jp.templates)
}

func (jp *JSONPhrases) importJSON(data []byte) error {
	var phraseStrings []string
	if err := json.Unmarshal(data, &phraseStrings); err != nil {
		return fmt.Errorf("could not parse the phrases data: %w", err)
	}

	if len(phraseStrings) == 0 {
		return ErrNoPhrases
	}

	for i, phrase := range phraseStrings {
		phraseTmpl, err := template.New(fmt.Sprintf("phrase-%v", i)).Option("missingkey=error").Parse(phrase)
		if err != nil {
			return fmt.Errorf("unable to parse phrase '%v': %w", phrase, err)
		}

		jp.templates = append(jp.templates, phraseTmpl)
	}

	return nil
}

func (jp *JSONPhrases) generateTemplateIndexes() {
	n := len(jp.templates)
	jp.templateIndexes = make([]int, n)
	for i := 0; i < n; i++ {
		jp.templateIndexes[i] = i
	}
}
