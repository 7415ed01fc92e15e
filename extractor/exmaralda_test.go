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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

const sampleExb = `<?xml version="1.0" encoding="UTF-8"?>
<basic-transcription>
<basic-body>
<tier id="TIE1" type="t" category="tx"><event start="T0" end="T1">word</event></tier>
<tier id="TIE2" type="a" category="ps"><event start="T0" end="T1">N</event><event start="T1" end="T2">V</event><event start="T2" end="T3"></event></tier>
<tier id="TIE3" type="a" category="ge"><event start="T0" end="T1">run-PST.[ipfv]</event><event start="T1" end="T2">house-PL</event><event start="T2" end="T3">NOM=PST</event></tier>
<tier id="TIE4" type="t" category="ge"><event start="T0" end="T1">MUST.NOT.MATCH</event></tier>
</basic-body>
</basic-transcription>`

func TestExmaraldaPosTags(t *testing.T) {
	doc, err := parseExmaralda([]byte(sampleExb))
	assert.NoError(t, err)
	ex := NewExmaralda("ps", "ge")
	assert.Equal(t, freqs.TagFreq{"N": 1, "V": 1}, ex.PosTags(doc))
}

func TestExmaraldaGlossSplitting(t *testing.T) {
	doc, err := parseExmaralda([]byte(sampleExb))
	assert.NoError(t, err)
	ex := NewExmaralda("ps", "ge")
	// "run-PST.[ipfv]" produces the pieces "run", "PST" and "ipfv"
	// (after bracket stripping), of which only "PST" is all-caps
	assert.Equal(
		t,
		freqs.TagFreq{"PST": 2, "PL": 1, "NOM": 1},
		ex.Glosses(doc),
	)
}

func TestExmaraldaTrailingSeparatorKeepsEmptyPiece(t *testing.T) {
	const src = `<?xml version="1.0" encoding="UTF-8"?>
<basic-transcription>
<basic-body>
<tier id="TIE1" type="a" category="ge"><event start="T0" end="T1">PST-</event></tier>
</basic-body>
</basic-transcription>`
	doc, err := parseExmaralda([]byte(src))
	assert.NoError(t, err)
	ex := NewExmaralda("ps", "ge")
	// a trailing morpheme separator yields an empty piece, which equals
	// its own upper-cased form and is therefore counted as a gloss
	assert.Equal(t, freqs.TagFreq{"PST": 1, "": 1}, ex.Glosses(doc))
}

func TestExmaraldaIgnoresNonAnnotationTiers(t *testing.T) {
	doc, err := parseExmaralda([]byte(sampleExb))
	assert.NoError(t, err)
	ex := NewExmaralda("ps", "tx")
	// the transcription tier has type "t", not "a"
	assert.Equal(t, freqs.TagFreq{}, ex.PosTags(doc))
}

func TestExmaraldaAbsentTier(t *testing.T) {
	doc, err := parseExmaralda([]byte(sampleExb))
	assert.NoError(t, err)
	ex := NewExmaralda("pos-en", "gloss-en")
	assert.Equal(t, freqs.TagFreq{}, ex.Glosses(doc))
}

func TestExmaraldaMalformed(t *testing.T) {
	_, err := parseExmaralda([]byte("<basic-transcription><basic-body>"))
	assert.Error(t, err)
}

func TestExmaraldaExt(t *testing.T) {
	assert.Equal(t, "exb", NewExmaralda("ps", "ge").Ext())
}

func TestNewForFormat(t *testing.T) {
	ex, err := NewForFormat(FormatISOTEI, "ps", "ge")
	assert.NoError(t, err)
	assert.Equal(t, "xml", ex.Ext())

	ex, err = NewForFormat(FormatExmaralda, "ps", "ge")
	assert.NoError(t, err)
	assert.Equal(t, "exb", ex.Ext())

	_, err = NewForFormat("eaf", "ps", "ge")
	assert.Error(t, err)
}
