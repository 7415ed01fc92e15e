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

package freqs

import (
	"regexp"
	"sort"
)

// rxBadGloss matches entries which sometimes leak into gloss extraction
// but are not real glosses: a bare continuation marker "I" or a numeric
// index of two or more digits.
var rxBadGloss = regexp.MustCompile(`^(?:I|[0-9]{2,})$`)

// TagFreq maps a tag (a gloss or a POS label) to the number of times
// it was encountered in the corpus. Keys are case-sensitive.
type TagFreq map[string]int

// Add registers one more occurrence of tag.
func (tf TagFreq) Add(tag string) {
	tf[tag]++
}

// Merge adds all counts from other to tf. The operation is commutative
// and associative, so per-file deltas may be merged in any order.
func (tf TagFreq) Merge(other TagFreq) {
	for tag, freq := range other {
		tf[tag] += freq
	}
}

func (tf TagFreq) Contains(tag string) bool {
	_, ok := tf[tag]
	return ok
}

// SortedKeys returns all tags in alphabetical order.
func (tf TagFreq) SortedKeys() []string {
	keys := make([]string, 0, len(tf))
	for tag := range tf {
		keys = append(keys, tag)
	}
	sort.Strings(keys)
	return keys
}

// Item is a single (tag, frequency) row of a report table.
type Item struct {
	Tag  string
	Freq int
}

// SortedByFreq returns all entries sorted by descending frequency;
// ties are broken by ascending tag.
func (tf TagFreq) SortedByFreq() []Item {
	items := make([]Item, 0, len(tf))
	for tag, freq := range tf {
		items = append(items, Item{Tag: tag, Freq: freq})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Freq != items[j].Freq {
			return items[i].Freq > items[j].Freq
		}
		return items[i].Tag < items[j].Tag
	})
	return items
}

// FilterGlosses returns a copy of tf without the spurious entries
// matched by rxBadGloss. Applying it to an already filtered table
// is a no-op.
func FilterGlosses(tf TagFreq) TagFreq {
	ans := make(TagFreq, len(tf))
	for tag, freq := range tf {
		if rxBadGloss.MatchString(tag) {
			continue
		}
		ans[tag] = freq
	}
	return ans
}
