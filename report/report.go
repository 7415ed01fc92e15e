// Copyright 2025 Timofey Arkhangelskiy <timarkh@gmail.com>
//   This file is part of tsakorpus-additional-tools.
//
//  tsakorpus-additional-tools is free software: you can redistribute it
//  and/or modify it under the terms of the GNU General Public License as
//  published by the Free Software Foundation, either version 3 of the
//  License, or (at your option) any later version.
//
//  tsakorpus-additional-tools is distributed in the hope that it will be
//  useful, but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with tsakorpus-additional-tools.  If not, see <https://www.gnu.org/licenses/>.

// Package report writes the settings files needed for tsakorpus JSON
// conversion, along with a short human-readable report, into the
// corpus directory.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"

	"github.com/timarkh/tsakorpus-additional-tools/categories"
	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

const (
	ConvSettingsFile = "conversion_settings.json"
	GrammRulesFile   = "grammRules.csv"
	GlossHTMLFile    = "glosses.html"
	CategoriesFile   = "categories.json"

	jsonIndent = "    "
)

// Emitter writes all output artifacts of a corpus run. All JSON is
// written with sorted keys so that repeated runs over an unchanged
// corpus produce byte-identical files.
type Emitter struct {
	corpusDir string
	lang      string
}

func NewEmitter(corpusDir, lang string) *Emitter {
	return &Emitter{
		corpusDir: corpusDir,
		lang:      lang,
	}
}

// WriteAll serializes the filtered gloss frequencies, the POS tag
// frequencies and the derived category mapping into the corpus
// directory.
func (e *Emitter) WriteAll(
	glosses, posTags freqs.TagFreq,
	cats categories.TagCategoryMap,
) error {
	glossList := glosses.SortedKeys()
	if err := e.writeConversionSettings(glossList); err != nil {
		return err
	}
	if err := e.writeGrammRules(glossList); err != nil {
		return err
	}
	if err := e.writeGlossReport(glosses, posTags); err != nil {
		return err
	}
	if err := e.writeCategories(cats); err != nil {
		return err
	}
	log.Info().Str("dir", e.corpusDir).Msg("settings files written")
	return nil
}

// writeConversionSettings sets the `glosses` key of
// conversion_settings.json to the sorted gloss list. Any other keys of
// a pre-existing file are preserved, and the original file is copied
// to a .bak path first.
func (e *Emitter) writeConversionSettings(glossList []string) error {
	path := filepath.Join(e.corpusDir, ConvSettingsFile)
	settings := make(map[string]any)
	if fs.PathExists(path) {
		rawData, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read existing %s: %w", ConvSettingsFile, err)
		}
		if err := os.WriteFile(path+".bak", rawData, 0644); err != nil {
			return fmt.Errorf("failed to back up %s: %w", ConvSettingsFile, err)
		}
		if err := sonic.Unmarshal(rawData, &settings); err != nil {
			return fmt.Errorf("failed to parse existing %s: %w", ConvSettingsFile, err)
		}
	}
	settings["glosses"] = glossList
	return e.writeJSON(path, settings)
}

// writeGrammRules writes one tab-separated line per gloss: the gloss
// itself and a conversion rule template (lowercase, periods replaced
// with commas).
func (e *Emitter) writeGrammRules(glossList []string) error {
	var sb strings.Builder
	for _, gloss := range glossList {
		sb.WriteString(gloss)
		sb.WriteByte('\t')
		sb.WriteString(strings.ReplaceAll(strings.ToLower(gloss), ".", ","))
		sb.WriteByte('\n')
	}
	path := filepath.Join(e.corpusDir, GrammRulesFile)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", GrammRulesFile, err)
	}
	return nil
}

func (e *Emitter) writeCategories(cats categories.TagCategoryMap) error {
	return e.writeJSON(filepath.Join(e.corpusDir, CategoriesFile), cats)
}

func (e *Emitter) writeJSON(path string, value any) error {
	// ConfigStd sorts map keys, which keeps repeated runs diff-friendly
	rawData, err := sonic.ConfigStd.MarshalIndent(value, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, rawData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
