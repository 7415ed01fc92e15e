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
	"strings"

	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

type teiDocument struct {
	XMLName xml.Name `xml:"TEI"`
	Body    teiBody  `xml:"text>body"`
}

func (doc *teiDocument) docFormat() string {
	return FormatISOTEI
}

type teiBody struct {
	AnnotationBlocks []teiAnnotationBlock `xml:"annotationBlock"`
}

type teiAnnotationBlock struct {
	SpanGroups []teiSpanGrp `xml:"spanGrp"`
}

type teiSpanGrp struct {
	Type  string    `xml:"type,attr"`
	Spans []teiSpan `xml:"span"`
}

type teiSpan struct {
	Text     string    `xml:",chardata"`
	Children []teiSpan `xml:"span"`
}

// ISOTEI extracts tags from Hamburg ISO/TEI files, where each
// annotation block contains one spanGrp per tier, identified by its
// `type` attribute. POS tags sit on word-level spans; glosses sit one
// level deeper, on morph-level spans.
type ISOTEI struct {
	posTier   string
	glossTier string
}

func NewISOTEI(posTier, glossTier string) *ISOTEI {
	return &ISOTEI{
		posTier:   posTier,
		glossTier: glossTier,
	}
}

func (ex *ISOTEI) Ext() string {
	return "xml"
}

func (ex *ISOTEI) LoadFile(path string) (Document, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseISOTEI(rawData)
}

func parseISOTEI(rawData []byte) (*teiDocument, error) {
	var doc teiDocument
	if err := xml.Unmarshal(rawData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ISO/TEI document: %w", err)
	}
	return &doc, nil
}

func (ex *ISOTEI) tierGroups(doc Document, tierID string) []teiSpanGrp {
	teiDoc, ok := doc.(*teiDocument)
	if !ok {
		return nil
	}
	var ans []teiSpanGrp
	for _, anno := range teiDoc.Body.AnnotationBlocks {
		for _, tier := range anno.SpanGroups {
			if tier.Type == tierID {
				ans = append(ans, tier)
			}
		}
	}
	return ans
}

func (ex *ISOTEI) Glosses(doc Document) freqs.TagFreq {
	curGlosses := make(freqs.TagFreq)
	for _, tier := range ex.tierGroups(doc, ex.glossTier) {
		for _, wSpan := range tier.Spans {
			for _, mSpan := range wSpan.Children {
				// glosses are conventionally written in upper case,
				// anything else on this tier is a lexical stem
				if len(mSpan.Text) > 0 && strings.ToUpper(mSpan.Text) == mSpan.Text {
					curGlosses.Add(mSpan.Text)
				}
			}
		}
	}
	return curGlosses
}

func (ex *ISOTEI) PosTags(doc Document) freqs.TagFreq {
	curPOS := make(freqs.TagFreq)
	for _, tier := range ex.tierGroups(doc, ex.posTier) {
		for _, wSpan := range tier.Spans {
			if len(wSpan.Text) > 0 {
				curPOS.Add(wSpan.Text)
			}
		}
	}
	return curPOS
}
