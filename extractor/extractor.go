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
	"fmt"

	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

const (
	// FormatISOTEI denotes Hamburg ISO/TEI transcription files (*.xml)
	FormatISOTEI = "tei"

	// FormatExmaralda denotes EXMARaLDA transcription files (*.exb)
	FormatExmaralda = "exb"
)

// Document is an in-memory parsed representation of one corpus file.
// It is produced by LoadFile and may only be passed back to the
// extractor which created it.
type Document interface {
	docFormat() string
}

// Extractor produces gloss and POS tag frequency tables from corpus
// files of one annotation format. The format is selected once at
// startup; all files of a run go through the same extractor.
type Extractor interface {

	// Ext returns the file extension (without the dot) of corpus
	// files in this format.
	Ext() string

	// LoadFile parses one corpus file. A parse failure means the file
	// is not a well-formed document of the expected format.
	LoadFile(path string) (Document, error)

	// Glosses returns the frequencies of all glosses found in doc.
	// A document without the gloss tier yields an empty table.
	Glosses(doc Document) freqs.TagFreq

	// PosTags returns the frequencies of all POS tags found in doc.
	// A document without the POS tier yields an empty table.
	PosTags(doc Document) freqs.TagFreq
}

// NewForFormat returns the extractor for the requested corpus format.
// posTier and glossTier identify the annotation tiers holding POS tags
// and glosses respectively.
func NewForFormat(format, posTier, glossTier string) (Extractor, error) {
	switch format {
	case FormatISOTEI:
		return NewISOTEI(posTier, glossTier), nil
	case FormatExmaralda:
		return NewExmaralda(posTier, glossTier), nil
	}
	return nil, fmt.Errorf("unsupported corpus format: %s", format)
}
