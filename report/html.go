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
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

const glossPageSrc = `<html>
<head><title>Glosses and POS for {{.Lang}}</title></head>
<body>
<h1>Glosses</h1>
<table>
{{- range .Glosses}}
<tr><td>{{.Tag}}</td><td>{{.Freq}}</td></tr>
{{- end}}
</table>
<h1>POS</h1>
<table>
{{- range .PosTags}}
<tr><td>{{.Tag}}</td><td>{{.Freq}}</td></tr>
{{- end}}
</table>
</body>
</html>
`

var glossPageTpl = template.Must(template.New("glosses").Parse(glossPageSrc))

type glossPageData struct {
	Lang    string
	Glosses []freqs.Item
	PosTags []freqs.Item
}

// writeGlossReport renders the human-readable frequency listing. Both
// tables are sorted by descending frequency, ties broken by the tag.
func (e *Emitter) writeGlossReport(glosses, posTags freqs.TagFreq) error {
	path := filepath.Join(e.corpusDir, GlossHTMLFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", GlossHTMLFile, err)
	}
	defer file.Close()
	err = glossPageTpl.Execute(file, glossPageData{
		Lang:    e.lang,
		Glosses: glosses.SortedByFreq(),
		PosTags: posTags.SortedByFreq(),
	})
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", GlossHTMLFile, err)
	}
	return nil
}
