package kanji

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"
)

// Table maps a kanji to its Kanjidic2 readings (on'yomi first, then kun'yomi,
// in file order). A Table is read-only once loaded.
type Table map[rune][]string

type kanjidic2Character struct {
	Literal        string `xml:"literal"`
	ReadingMeaning struct {
		RMGroup []struct {
			Reading []struct {
				Value string `xml:",chardata"`
				Type  string `xml:"r_type,attr"`
			} `xml:"reading"`
		} `xml:"rmgroup"`
	} `xml:"reading_meaning"`
}

// LoadKanjidic2 parses kanjidic2.xml at path.
func LoadKanjidic2(path string) (Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("open kanjidic2: %w", err)
	}
	defer f.Close()

	t, err := ParseKanjidic2(f)
	if err != nil {
		return nil, err
	}
	slog.Debug("kanjidic2 loaded", "path", path, "entries", len(t))
	return t, nil
}

// ParseKanjidic2 streams <character> elements from r, skipping any wrapper,
// and keeps the ja_on and ja_kun readings of single-rune literals.
func ParseKanjidic2(r io.Reader) (Table, error) {
	t := make(Table)
	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse kanjidic2: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "character" {
			continue
		}
		var c kanjidic2Character
		if err := d.DecodeElement(&c, &se); err != nil {
			slog.Debug("skipping undecodable kanjidic2 character", "error", err)
			continue
		}
		if !isSingleRune(c.Literal) {
			continue
		}
		var readings []string
		for _, group := range c.ReadingMeaning.RMGroup {
			for _, rd := range group.Reading {
				if rd.Type == "ja_on" || rd.Type == "ja_kun" {
					readings = append(readings, rd.Value)
				}
			}
		}
		if len(readings) == 0 {
			continue
		}
		k, _ := utf8.DecodeRuneInString(c.Literal)
		t[k] = readings
	}
	return t, nil
}

// Reading returns the first reading of k reduced to its stem in hiragana.
func (t Table) Reading(k rune) (string, bool) {
	for _, r := range t[k] {
		if s := Stem(r); s != "" {
			return s, true
		}
	}
	return "", false
}
