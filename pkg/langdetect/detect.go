// Package langdetect picks a grammar for a document when its file extension
// alone does not decide. It uses go-enry for extension, shebang and
// classifier lookups and narrows every answer to the grammars a caller knows.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Grammar names the detector can return without a registry.
const (
	langGo   = "go"
	langRust = "rust"
)

// decoys are classifier candidates that are never returned. They keep the
// classifier from picking a known grammar for content that is clearly
// something else.
var decoys = []string{
	"Python", "Shell", "JavaScript", "TypeScript", "Ruby", "Java",
	"C", "C++", "SQL", "JSON", "YAML", "HTML", "Markdown",
}

// Detector maps file names and content to grammar names.
type Detector struct {
	known      map[string]struct{}
	candidates []string
}

// New creates a detector restricted to the given grammar names.
func New(grammars ...string) *Detector {
	d := &Detector{known: make(map[string]struct{}, len(grammars))}
	for _, name := range grammars {
		name = strings.ToLower(name)
		d.known[name] = struct{}{}
		if lang, ok := enry.GetLanguageByAlias(name); ok {
			d.candidates = append(d.candidates, lang)
		}
	}
	for _, lang := range decoys {
		if !slices.Contains(d.candidates, lang) {
			d.candidates = append(d.candidates, lang)
		}
	}
	return d
}

var defaultDetector = New(langRust, langGo)

// Detect runs the default detector, which knows the built-in grammars.
func Detect(filename string, content []byte) string {
	return defaultDetector.Detect(filename, content)
}

// Detect returns the grammar name for a document, or "" when unsure.
// Strategies run from most to least reliable: file extension, shebang,
// content patterns, then the enry classifier.
func (d *Detector) Detect(filename string, content []byte) string {
	if filename != "" && filepath.Ext(filename) != "" {
		for _, lang := range enry.GetLanguagesByExtension(filename, content, nil) {
			if name, ok := d.accept(lang); ok {
				return name
			}
		}
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		name, _ := d.accept(lang)
		return name
	}

	if name := detectByPattern(content); name != "" {
		if _, ok := d.known[name]; ok {
			return name
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, d.candidates); safe && lang != "" {
		name, _ := d.accept(lang)
		return name
	}

	return ""
}

// Known reports whether name is one of the detector's grammars.
func (d *Detector) Known(name string) bool {
	_, ok := d.known[strings.ToLower(name)]
	return ok
}

// accept normalizes an enry language name and keeps it if it is known.
func (d *Detector) accept(lang string) (string, bool) {
	name := strings.ToLower(lang)
	if _, ok := d.known[name]; ok {
		return name, true
	}
	return "", false
}

// detectByPattern checks for constructs that give a language away.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if lang := detectGo(trimmed); lang != "" {
		return lang
	}
	return detectRust(string(content))
}

func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	if bytes.Contains(trimmed, []byte("func ")) && bytes.Contains(trimmed, []byte(":= ")) {
		return langGo
	}
	return ""
}

func detectRust(contentStr string) string {
	if strings.Contains(contentStr, "fn main()") ||
		strings.Contains(contentStr, "println!") ||
		strings.Contains(contentStr, "let mut ") ||
		strings.Contains(contentStr, "#[derive(") ||
		(strings.Contains(contentStr, "impl ") && strings.Contains(contentStr, "fn ")) {
		return langRust
	}
	return ""
}
