package game

import (
	"embed"
	"io/fs"
	"math/rand"
	"strings"
)

//go:embed words/*.txt
var wordsFS embed.FS

const canonicalFile = "words/en.txt"

var canonicalWords = mustLoadWords(canonicalFile)

// CanonicalWords returns a copy of the built-in word list.
func CanonicalWords() []string {
	out := make([]string, len(canonicalWords))
	copy(out, canonicalWords)
	return out
}

// ParseWords reads one word per line. Blank lines and lines starting with
// '#' are skipped; surrounding whitespace is trimmed and case is kept.
func ParseWords(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		w := strings.TrimSpace(line)
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out
}

func mustLoadWords(name string) []string {
	b, err := fs.ReadFile(wordsFS, name)
	if err != nil {
		panic(err)
	}
	words := ParseWords(b)
	if len(words) == 0 {
		panic("empty embedded word list " + name)
	}
	return words
}

// Shuffler permutes words in place.
type Shuffler func(words []string)

// RandomShuffle is a uniform in-place shuffle using the shared math/rand
// source, which is safe for concurrent use.
func RandomShuffle(words []string) {
	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
