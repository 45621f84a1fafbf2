package keywords

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// Lexicon holds the static word lists used by the extractor.
type Lexicon struct {
	Allow     []string `mapstructure:"allow"`
	Deny      []string `mapstructure:"deny"`
	StopWords []string `mapstructure:"stop-words"`

	allow map[string]struct{}
	deny  map[string]struct{}
	stop  map[string]struct{}
}

// DefaultLexicon returns the lexicon compiled into the binary.
func DefaultLexicon() (*Lexicon, error) {
	return parseLexicon(bytes.NewReader(defaultLexicon), "yaml")
}

// LoadLexicon reads a lexicon from path. An empty path yields the default lexicon.
// Lists missing from the file fall back to the default ones.
func LoadLexicon(path string) (*Lexicon, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultLexicon()
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read lexicon %q: %w", path, err)
	}

	custom, err := decodeLexicon(v)
	if err != nil {
		return nil, fmt.Errorf("decode lexicon %q: %w", path, err)
	}

	defaults, err := DefaultLexicon()
	if err != nil {
		return nil, err
	}

	if len(custom.Allow) == 0 {
		custom.Allow = defaults.Allow
	}
	if len(custom.Deny) == 0 {
		custom.Deny = defaults.Deny
	}
	if len(custom.StopWords) == 0 {
		custom.StopWords = defaults.StopWords
	}

	custom.index()
	return custom, nil
}

func parseLexicon(r io.Reader, format string) (*Lexicon, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	lex, err := decodeLexicon(v)
	if err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}

	lex.index()
	return lex, nil
}

func decodeLexicon(v *viper.Viper) (*Lexicon, error) {
	var lex Lexicon
	if err := mapstructure.Decode(v.AllSettings(), &lex); err != nil {
		return nil, err
	}
	return &lex, nil
}

func (l *Lexicon) index() {
	l.allow = toLookup(l.Allow)
	l.deny = toLookup(l.Deny)
	l.stop = toLookup(l.StopWords)
}

func toLookup(items []string) map[string]struct{} {
	lookup := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		lookup[item] = struct{}{}
	}
	return lookup
}

// IsAllowed reports whether term is on the allow-list.
func (l *Lexicon) IsAllowed(term string) bool {
	_, ok := l.allow[term]
	return ok
}

// IsDenied reports whether term is on the deny-list.
func (l *Lexicon) IsDenied(term string) bool {
	_, ok := l.deny[term]
	return ok
}

// IsStopWord reports whether term is a stop word.
func (l *Lexicon) IsStopWord(term string) bool {
	_, ok := l.stop[term]
	return ok
}
