// Package assets reads the three auxiliary file formats spec §6 names
// alongside the scripting dialect: localization YAML-like key→string
// files, semicolon-separated province CSV, and DDS texture headers. None
// of these grow into a general YAML/GIS/image library — each reader
// exists at exactly the interface the catalog's corresponding item kind
// needs.
package assets

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocalizationEntry is one key→string mapping from a localization file,
// with the optional language tag the engine's `l_english:`-style header
// line establishes for every key beneath it.
type LocalizationEntry struct {
	Key      string
	Value    string
	Language string
	Line     int
}

// LoadLocalization parses one localization file's contents. The format is
// YAML-like but not quite YAML (a bare `l_english:` header line, then
// `  key: "value"` entries, with `#` comments) — the teacher's policy/MCP
// packs use yaml.v3 for genuine YAML; here the header line is stripped by
// hand and the remaining indented body is unmarshaled as a
// map[string]string via yaml.v3, which accepts the resulting subset
// directly.
func LoadLocalization(path string) ([]LocalizationEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseLocalization(string(data))
}

func parseLocalization(src string) ([]LocalizationEntry, error) {
	lines := strings.Split(src, "\n")
	var entries []LocalizationEntry
	language := "english"
	var bodyLines []string
	bodyStart := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "l_") && strings.HasSuffix(trimmed, ":") {
			language = strings.TrimSuffix(strings.TrimPrefix(trimmed, "l_"), ":")
			bodyStart = i + 1
			continue
		}
		bodyLines = append(bodyLines, line)
	}

	body := strings.Join(bodyLines, "\n")
	var raw map[string]string
	if err := yaml.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("parsing localization body: %w", err)
	}

	// yaml.Unmarshal doesn't preserve source order or line numbers, so
	// re-scan the body lines for "key:" prefixes to recover both — the
	// catalog needs a location to anchor duplicate-definition diagnostics.
	seen := make(map[string]bool, len(raw))
	for i, line := range lines {
		if i < bodyStart {
			continue
		}
		trimmed := strings.TrimSpace(line)
		idx := strings.IndexByte(trimmed, ':')
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(trimmed[:idx])
		key = strings.TrimSuffix(key, "\"")
		key = strings.TrimPrefix(key, "\"")
		val, ok := raw[key]
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, LocalizationEntry{Key: key, Value: val, Language: language, Line: i + 1})
	}
	return entries, nil
}

// Province is one semicolon-separated row from a province definition CSV:
// id;r;g;b;name;x (the engine's province-map legend format). Only the
// fields the catalog cross-references are extracted.
type Province struct {
	ID   int
	Name string
	Line int
}

// LoadProvinces reads a province definition CSV. Malformed rows are
// skipped rather than aborting the whole file, matching the analyzer's
// total-validator policy of degrading gracefully rather than failing the
// run (spec §7).
func LoadProvinces(path string) ([]Province, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Province
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if line == 1 && strings.HasPrefix(strings.ToLower(text), "province") {
			continue // header row
		}
		fields := strings.Split(text, ";")
		if len(fields) < 5 {
			continue
		}
		var id int
		if _, err := fmt.Sscanf(strings.TrimSpace(fields[0]), "%d", &id); err != nil {
			continue
		}
		out = append(out, Province{ID: id, Name: strings.TrimSpace(fields[4]), Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
