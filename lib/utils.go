package lib

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	doubleStruckUpper = 0x1D538
	doubleStruckLower = 0x1D552
	doubleStruckDigit = 0x1D7D8
)

// Capitals that live in the Letterlike Symbols block instead of the
// mathematical alphanumerics block.
var doubleStruckLetterlike = map[rune]rune{
	'C': 'ℂ',
	'H': 'ℍ',
	'N': 'ℕ',
	'P': 'ℙ',
	'Q': 'ℚ',
	'R': 'ℝ',
	'Z': 'ℤ',
}

func GetRandomInt(min, max int) (int, error) {
	if max-min <= 0 {
		return 0, fmt.Errorf("tried to get random int between [0, %v)", max-min)
	}

	bg := big.NewInt(int64(max - min))
	n, err := rand.Int(rand.Reader, bg)
	if err != nil {
		return 0, err
	}

	return int(n.Int64()) + min, nil
}

// ToDoubleStruck maps ASCII letters and digits to their double-struck forms.
func ToDoubleStruck(str string) string {
	return strings.Map(func(r rune) rune {
		if v, ok := doubleStruckLetterlike[r]; ok {
			return v
		}

		switch {
		case r >= 'A' && r <= 'Z':
			return doubleStruckUpper + (r - 'A')
		case r >= 'a' && r <= 'z':
			return doubleStruckLower + (r - 'a')
		case r >= '0' && r <= '9':
			return doubleStruckDigit + (r - '0')
		}

		return r
	}, str)
}
