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

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"

	"github.com/timarkh/tsakorpus-additional-tools/categories"
	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

func testData() (freqs.TagFreq, freqs.TagFreq, categories.TagCategoryMap) {
	glosses := freqs.TagFreq{"PST": 5, "NOM": 2, "1.SG": 2}
	posTags := freqs.TagFreq{"N": 7, "V": 3}
	cats := categories.Classify(
		"beserman", posTags, glosses,
		categories.ReferenceTable{"pst": "tense", "sg": "number"},
	)
	return glosses, posTags, cats
}

func TestWriteAllCreatesArtifacts(t *testing.T) {
	corpusDir := t.TempDir()
	glosses, posTags, cats := testData()
	emitter := NewEmitter(corpusDir, "beserman")
	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))
	for _, name := range []string{
		ConvSettingsFile, GrammRulesFile, GlossHTMLFile, CategoriesFile,
	} {
		_, err := os.Stat(filepath.Join(corpusDir, name))
		assert.NoError(t, err, name)
	}
}

func TestConversionSettingsGlossList(t *testing.T) {
	corpusDir := t.TempDir()
	glosses, posTags, cats := testData()
	emitter := NewEmitter(corpusDir, "beserman")
	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))

	rawData, err := os.ReadFile(filepath.Join(corpusDir, ConvSettingsFile))
	assert.NoError(t, err)
	var settings struct {
		Glosses []string `json:"glosses"`
	}
	assert.NoError(t, sonic.Unmarshal(rawData, &settings))
	assert.Equal(t, []string{"1.SG", "NOM", "PST"}, settings.Glosses)
}

func TestConversionSettingsMergePreservesOtherKeys(t *testing.T) {
	corpusDir := t.TempDir()
	origContent := []byte(`{"other_key": 1}`)
	path := filepath.Join(corpusDir, ConvSettingsFile)
	assert.NoError(t, os.WriteFile(path, origContent, 0644))

	glosses, posTags, cats := testData()
	emitter := NewEmitter(corpusDir, "beserman")
	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))

	rawData, err := os.ReadFile(path)
	assert.NoError(t, err)
	var settings map[string]any
	assert.NoError(t, sonic.Unmarshal(rawData, &settings))
	assert.Equal(t, float64(1), settings["other_key"])
	assert.Len(t, settings["glosses"], 3)

	backup, err := os.ReadFile(path + ".bak")
	assert.NoError(t, err)
	assert.Equal(t, origContent, backup)
}

func TestGrammRules(t *testing.T) {
	corpusDir := t.TempDir()
	glosses, posTags, cats := testData()
	emitter := NewEmitter(corpusDir, "beserman")
	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))

	rawData, err := os.ReadFile(filepath.Join(corpusDir, GrammRulesFile))
	assert.NoError(t, err)
	assert.Equal(t, "1.SG\t1,sg\nNOM\tnom\nPST\tpst\n", string(rawData))
}

func TestGlossReportOrder(t *testing.T) {
	corpusDir := t.TempDir()
	glosses, posTags, cats := testData()
	emitter := NewEmitter(corpusDir, "beserman")
	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))

	rawData, err := os.ReadFile(filepath.Join(corpusDir, GlossHTMLFile))
	assert.NoError(t, err)
	page := string(rawData)
	assert.Contains(t, page, "<title>Glosses and POS for beserman</title>")
	// glosses sorted by descending frequency, ties broken alphabetically
	iPST := strings.Index(page, "<tr><td>PST</td><td>5</td></tr>")
	iSG := strings.Index(page, "<tr><td>1.SG</td><td>2</td></tr>")
	iNOM := strings.Index(page, "<tr><td>NOM</td><td>2</td></tr>")
	assert.True(t, iPST >= 0 && iSG >= 0 && iNOM >= 0)
	assert.True(t, iPST < iSG)
	assert.True(t, iSG < iNOM)
}

func TestCategoriesFile(t *testing.T) {
	corpusDir := t.TempDir()
	glosses, posTags, cats := testData()
	emitter := NewEmitter(corpusDir, "beserman")
	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))

	rawData, err := os.ReadFile(filepath.Join(corpusDir, CategoriesFile))
	assert.NoError(t, err)
	var parsed map[string]map[string]string
	assert.NoError(t, sonic.Unmarshal(rawData, &parsed))
	assert.Equal(t, "tense", parsed["beserman"]["pst"])
	assert.Equal(t, "number", parsed["beserman"]["sg"])
	assert.Equal(t, "pos", parsed["beserman"]["N"])
	assert.Equal(t, "add", parsed["beserman"]["nom"])
}

func TestRepeatedRunsAreByteIdentical(t *testing.T) {
	corpusDir := t.TempDir()
	glosses, posTags, cats := testData()
	emitter := NewEmitter(corpusDir, "beserman")

	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))
	first := map[string][]byte{}
	for _, name := range []string{ConvSettingsFile, GrammRulesFile, CategoriesFile} {
		rawData, err := os.ReadFile(filepath.Join(corpusDir, name))
		assert.NoError(t, err)
		first[name] = rawData
	}

	assert.NoError(t, emitter.WriteAll(glosses, posTags, cats))
	for name, prev := range first {
		rawData, err := os.ReadFile(filepath.Join(corpusDir, name))
		assert.NoError(t, err)
		assert.Equal(t, string(prev), string(rawData), name)
	}
}
