package rules

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"gopkg.in/yaml.v3"

	"github.com/haukened/linkcheck/internal/link/domain"
)

// fileDocument is the YAML layout of a rules file:
//
//	keywords: [phishing, free-gift]
//	domains: [evil-site.com]
//	tlds: [.xyz, tk]
//
// JSON and TOML files use the same three keys.
type fileDocument struct {
	Keywords []string `yaml:"keywords" koanf:"keywords"`
	Domains  []string `yaml:"domains" koanf:"domains"`
	TLDs     []string `yaml:"tlds" koanf:"tlds"`
}

var fileKeys = map[string]bool{"keywords": true, "domains": true, "tlds": true}

// LoadFile reads a rules file, choosing the format by extension: .yaml/.yml,
// .json or .toml.
func LoadFile(path string, now time.Time) ([]domain.Rule, error) {
	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open rules file: %w", err)
		}
		defer f.Close()
		return ParseFile(f, path, now)
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, fmt.Errorf("unsupported rules file type %q", ext)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	for key := range k.Raw() {
		if !fileKeys[key] {
			return nil, fmt.Errorf("decode rules file %s: unknown key %q", path, key)
		}
	}

	var doc fileDocument
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	return doc.rules(path, now)
}

// ParseFile decodes a YAML rules document. Unlike feeds, a rules file is hand
// written, so any invalid entry or unknown key is an error.
func ParseFile(r io.Reader, source string, now time.Time) ([]domain.Rule, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc fileDocument
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode rules file %s: %w", source, err)
	}
	return doc.rules(source, now)
}

// rules validates every entry in keyword, domain, tld order.
func (doc fileDocument) rules(source string, now time.Time) ([]domain.Rule, error) {
	out := make([]domain.Rule, 0, len(doc.Keywords)+len(doc.Domains)+len(doc.TLDs))
	add := func(kind domain.RuleKind, patterns []string) error {
		for i, p := range patterns {
			rule, err := domain.NewRule(p, kind, source, now)
			if err != nil {
				return fmt.Errorf("%s: %ss[%d]: %w", source, kind, i, err)
			}
			out = append(out, rule)
		}
		return nil
	}
	if err := add(domain.RuleKeyword, doc.Keywords); err != nil {
		return nil, err
	}
	if err := add(domain.RuleDomain, doc.Domains); err != nil {
		return nil, err
	}
	if err := add(domain.RuleTLD, doc.TLDs); err != nil {
		return nil, err
	}
	return out, nil
}
