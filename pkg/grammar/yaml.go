package grammar

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for grammar packs.
var (
	ErrNoName          = errors.New("grammar has no name")
	ErrUnknownOperator = errors.New("unknown operator kind")
)

// yamlPack is the on-disk shape of a grammar pack.
type yamlPack struct {
	Name        string            `yaml:"name"`
	Aliases     []string          `yaml:"aliases"`
	Extensions  []string          `yaml:"extensions"`
	Keywords    []string          `yaml:"keywords"`
	Contextual  []yamlContextual  `yaml:"contextual_keywords"`
	Operators   map[string]string `yaml:"operators"`
	Punctuation string            `yaml:"punctuation"`
	Rules       yamlRules         `yaml:"rules"`
}

type yamlContextual struct {
	Word     string   `yaml:"word"`
	NotAfter []string `yaml:"not_after"`
}

type yamlRules struct {
	LineComments        []string `yaml:"line_comments"`
	BlockOpen           string   `yaml:"block_open"`
	BlockClose          string   `yaml:"block_close"`
	NestedBlockComments bool     `yaml:"nested_block_comments"`
	RawStrings          bool     `yaml:"raw_strings"`
	ByteStrings         bool     `yaml:"byte_strings"`
	CStrings            bool     `yaml:"c_strings"`
	BacktickRawStrings  bool     `yaml:"backtick_raw_strings"`
	Lifetimes           bool     `yaml:"lifetimes"`
	Attributes          bool     `yaml:"attributes"`
	Macros              bool     `yaml:"macros"`
	RawIdentifiers      bool     `yaml:"raw_identifiers"`
	Shebang             bool     `yaml:"shebang"`
}

// FromYAML parses a grammar pack.
//
// Operators are a map from operator text to kind name, for example:
//
//	operators:
//	  "::": path
//	  "==": comparison
func FromYAML(data []byte) (*Grammar, error) {
	var pack yamlPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parse grammar yaml: %w", err)
	}

	if strings.TrimSpace(pack.Name) == "" {
		return nil, ErrNoName
	}

	spec := Spec{
		Name:        pack.Name,
		Aliases:     pack.Aliases,
		Extensions:  pack.Extensions,
		Keywords:    pack.Keywords,
		Punctuation: pack.Punctuation,
		Rules:       Rules(pack.Rules),
	}

	for _, ck := range pack.Contextual {
		spec.Contextual = append(spec.Contextual, ContextualKeyword(ck))
	}

	for text, kindName := range pack.Operators {
		kind, ok := ParseOperatorKind(kindName)
		if !ok {
			return nil, fmt.Errorf("grammar %q operator %q: %w: %q", pack.Name, text, ErrUnknownOperator, kindName)
		}
		spec.Operators = append(spec.Operators, Operator{Text: text, Kind: kind})
	}

	return New(spec), nil
}

// Load reads a grammar pack from r.
func Load(r io.Reader) (*Grammar, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return FromYAML(data)
}

// ToYAML serializes a grammar back into pack form.
func (g *Grammar) ToYAML() ([]byte, error) {
	pack := yamlPack{
		Name:       g.Name,
		Aliases:    g.Aliases,
		Extensions: g.Extensions,
		Keywords:   g.Keywords(),
		Operators:  make(map[string]string, len(g.operators)),
		Rules:      yamlRules(g.Rules),
	}

	for _, op := range g.operators {
		pack.Operators[op.Text] = op.Kind.String()
	}
	for _, ck := range g.contextual {
		pack.Contextual = append(pack.Contextual, yamlContextual(ck))
	}
	slices.SortFunc(pack.Contextual, func(a, b yamlContextual) int {
		return strings.Compare(a.Word, b.Word)
	})

	var punct strings.Builder
	for b := range 256 {
		if g.IsPunctuation(byte(b)) {
			punct.WriteByte(byte(b))
		}
	}
	pack.Punctuation = punct.String()

	out, err := yaml.Marshal(&pack)
	if err != nil {
		return nil, fmt.Errorf("encode grammar: %w", err)
	}
	return out, nil
}
