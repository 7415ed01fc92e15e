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

package categories

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

// CatPOS is assigned to every observed POS tag; CatAdd is the fallback
// for grammatical tags missing from the reference table ("additional
// grammatical meaning").
const (
	CatPOS = "pos"
	CatAdd = "add"
)

// rxSubTag splits a compound gloss (e.g. "1.SG" or "NOM/ACC") into
// individual grammatical tags.
var rxSubTag = regexp.MustCompile(`[/.]`)

// ReferenceTable maps known lowercase grammatical tags to their
// semantic category labels. It is a static, read-only input loaded
// once at startup.
type ReferenceTable map[string]string

// LoadReferenceTable reads the reference category table from a JSON
// file. A missing or unparsable table is a fatal condition for the
// caller: no corpus processing may start without it.
func LoadReferenceTable(path string) (ReferenceTable, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load the tag reference table: %w", err)
	}
	var table ReferenceTable
	if err := sonic.Unmarshal(rawData, &table); err != nil {
		return nil, fmt.Errorf("failed to parse the tag reference table %s: %w", path, err)
	}
	return table, nil
}

// TagCategoryMap maps every observed tag to its category, nested one
// level under the language name. Its layout matches what tsakorpus
// expects in categories.json.
type TagCategoryMap map[string]map[string]string

// Classify derives the tag-to-category mapping from the final POS tag
// and gloss sets. POS tags always get the "pos" category and are never
// reclassified when they reappear as gloss sub-tags: POS is the more
// essential category for the search interface.
func Classify(lang string, posTags, glosses freqs.TagFreq, table ReferenceTable) TagCategoryMap {
	tags := make(map[string]string)
	for pos := range posTags {
		tags[pos] = CatPOS
	}
	for _, gloss := range glosses.SortedKeys() {
		for _, tag := range rxSubTag.Split(strings.ToLower(gloss), -1) {
			if posTags.Contains(tag) {
				continue
			}
			cat := CatAdd
			if refCat, ok := table[tag]; ok {
				cat = refCat
			}
			tags[tag] = cat
		}
	}
	return TagCategoryMap{lang: tags}
}
