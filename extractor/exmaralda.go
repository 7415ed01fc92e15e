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

package extractor

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

// rxMorphBoundary splits an annotation event into morphemes: hyphens,
// equals signs, and a period immediately followed by an opening bracket
// all act as morpheme boundary markers.
var rxMorphBoundary = regexp.MustCompile(`[-=]|\.\[`)

type exbDocument struct {
	XMLName xml.Name  `xml:"basic-transcription"`
	Tiers   []exbTier `xml:"basic-body>tier"`
}

func (doc *exbDocument) docFormat() string {
	return FormatExmaralda
}

type exbTier struct {
	Type     string     `xml:"type,attr"`
	Category string     `xml:"category,attr"`
	Events   []exbEvent `xml:"event"`
}

type exbEvent struct {
	Text string `xml:",chardata"`
}

// Exmaralda extracts tags from EXMARaLDA (exb) files, where all tiers
// form a flat list and annotation tiers (type="a") are identified by
// their `category` attribute. Unlike in ISO/TEI, glosses are not
// pre-split here, so each event is broken into morphemes first.
type Exmaralda struct {
	posTier   string
	glossTier string
}

func NewExmaralda(posTier, glossTier string) *Exmaralda {
	return &Exmaralda{
		posTier:   posTier,
		glossTier: glossTier,
	}
}

func (ex *Exmaralda) Ext() string {
	return "exb"
}

func (ex *Exmaralda) LoadFile(path string) (Document, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseExmaralda(rawData)
}

func parseExmaralda(rawData []byte) (*exbDocument, error) {
	var doc exbDocument
	if err := xml.Unmarshal(rawData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse EXMARaLDA document: %w", err)
	}
	return &doc, nil
}

func (ex *Exmaralda) annotationTiers(doc Document, tierID string) []exbTier {
	exbDoc, ok := doc.(*exbDocument)
	if !ok {
		return nil
	}
	var ans []exbTier
	for _, tier := range exbDoc.Tiers {
		if tier.Type == "a" && tier.Category == tierID {
			ans = append(ans, tier)
		}
	}
	return ans
}

func (ex *Exmaralda) Glosses(doc Document) freqs.TagFreq {
	curGlosses := make(freqs.TagFreq)
	for _, tier := range ex.annotationTiers(doc, ex.glossTier) {
		for _, event := range tier.Events {
			if len(event.Text) == 0 {
				continue
			}
			for _, gloss := range rxMorphBoundary.Split(event.Text, -1) {
				gloss = strings.Trim(gloss, "[]()<>")
				if gloss != strings.ToUpper(gloss) {
					continue
				}
				curGlosses.Add(gloss)
			}
		}
	}
	return curGlosses
}

func (ex *Exmaralda) PosTags(doc Document) freqs.TagFreq {
	curPOS := make(freqs.TagFreq)
	for _, tier := range ex.annotationTiers(doc, ex.posTier) {
		for _, event := range tier.Events {
			if len(event.Text) > 0 {
				curPOS.Add(event.Text)
			}
		}
	}
	return curPOS
}
