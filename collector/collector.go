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

package collector

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	cncfs "github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/timarkh/tsakorpus-additional-tools/extractor"
	"github.com/timarkh/tsakorpus-additional-tools/freqs"
)

// FileLoadError is returned when a corpus file cannot be parsed as
// a document of the expected format. With the default fail-fast policy
// it aborts the whole run, as a malformed corpus indicates a data
// preparation problem the operator must fix.
type FileLoadError struct {
	Path string
	Err  error
}

func (err FileLoadError) Error() string {
	return fmt.Sprintf("failed to load corpus file %s: %s", err.Path, err.Err)
}

func (err FileLoadError) Unwrap() error {
	return err.Err
}

// Options configure aspects of a corpus run which deviate from the
// default behavior (fail on the first broken file, fully sequential
// processing).
type Options struct {

	// SkipBrokenFiles makes the collector log a warning and continue
	// when a corpus file cannot be parsed, instead of aborting the run.
	SkipBrokenFiles bool

	// MaxNumConcurrentJobs sets how many files may be extracted in
	// parallel. Values below 2 mean sequential processing. Final
	// frequencies do not depend on this setting, as per-file deltas
	// are merged by a commutative per-key sum.
	MaxNumConcurrentJobs int
}

// Collector walks a corpus directory and aggregates gloss and POS tag
// frequencies over all files matching the extractor's format. It is
// the only owner of the two frequency tables during a run.
type Collector struct {
	ex        extractor.Extractor
	corpusDir string
	opts      Options

	mergeLock  sync.Mutex
	glosses    freqs.TagFreq
	posTags    freqs.TagFreq
	numFiles   int
	numSkipped int
}

func New(ex extractor.Extractor, corpusDir string, opts Options) *Collector {
	return &Collector{
		ex:        ex,
		corpusDir: corpusDir,
		opts:      opts,
		glosses:   make(freqs.TagFreq),
		posTags:   make(freqs.TagFreq),
	}
}

// Glosses returns the aggregated (and, after ProcessCorpus, filtered)
// gloss frequencies.
func (c *Collector) Glosses() freqs.TagFreq {
	return c.glosses
}

// PosTags returns the aggregated POS tag frequencies.
func (c *Collector) PosTags() freqs.TagFreq {
	return c.posTags
}

// NumFiles returns the number of corpus files processed so far.
func (c *Collector) NumFiles() int {
	return c.numFiles
}

// NumSkipped returns the number of broken files skipped so far
// (always zero unless SkipBrokenFiles is on).
func (c *Collector) NumSkipped() int {
	return c.numSkipped
}

func (c *Collector) matchesExt(name string) bool {
	return strings.EqualFold(
		strings.TrimPrefix(filepath.Ext(name), "."), c.ex.Ext())
}

// listCorpusFiles walks the corpus directory recursively and returns
// all files whose extension matches the corpus format,
// case-insensitively.
func (c *Collector) listCorpusFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(c.corpusDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && c.matchesExt(entry.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus files in %s: %w", c.corpusDir, err)
	}
	return paths, nil
}

func (c *Collector) processFile(path string) error {
	doc, err := c.ex.LoadFile(path)
	if err != nil {
		if c.opts.SkipBrokenFiles {
			log.Warn().Str("file", path).Err(err).Msg("skipping broken corpus file")
			c.mergeLock.Lock()
			c.numSkipped++
			c.mergeLock.Unlock()
			return nil
		}
		return FileLoadError{Path: path, Err: err}
	}
	curPOS := c.ex.PosTags(doc)
	curGlosses := c.ex.Glosses(doc)
	log.Debug().
		Str("file", path).
		Int("glosses", len(curGlosses)).
		Int("posTags", len(curPOS)).
		Msg("processed corpus file")

	c.mergeLock.Lock()
	defer c.mergeLock.Unlock()
	c.posTags.Merge(curPOS)
	c.glosses.Merge(curGlosses)
	c.numFiles++
	return nil
}

// ProcessCorpus visits every corpus file under the corpus directory
// and aggregates its glosses and POS tags into the corpus-wide tables.
// Once the walk is finished, spurious gloss entries are filtered out.
func (c *Collector) ProcessCorpus(ctx context.Context) error {
	isDir, err := cncfs.IsDir(c.corpusDir)
	if err != nil {
		return fmt.Errorf("failed to test corpus directory %s: %w", c.corpusDir, err)
	}
	if !isDir {
		return fmt.Errorf("corpus directory %s does not exist", c.corpusDir)
	}
	paths, err := c.listCorpusFiles()
	if err != nil {
		return err
	}

	if c.opts.MaxNumConcurrentJobs > 1 {
		group, _ := errgroup.WithContext(ctx)
		group.SetLimit(c.opts.MaxNumConcurrentJobs)
		for _, path := range paths {
			path := path
			group.Go(func() error {
				return c.processFile(path)
			})
		}
		if err := group.Wait(); err != nil {
			return err
		}

	} else {
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := c.processFile(path); err != nil {
				return err
			}
		}
	}

	c.glosses = freqs.FilterGlosses(c.glosses)
	log.Info().
		Int("files", c.numFiles).
		Int("skipped", c.numSkipped).
		Int("glosses", len(c.glosses)).
		Int("posTags", len(c.posTags)).
		Msg("corpus processed")
	return nil
}
