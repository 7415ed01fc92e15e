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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/timarkh/tsakorpus-additional-tools/categories"
	"github.com/timarkh/tsakorpus-additional-tools/cnf"
	"github.com/timarkh/tsakorpus-additional-tools/collector"
	"github.com/timarkh/tsakorpus-additional-tools/extractor"
	"github.com/timarkh/tsakorpus-additional-tools/general"
	"github.com/timarkh/tsakorpus-additional-tools/report"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

// setupFlags registers all command line options on the provided
// flag set. The values are read back via applyFlagOverrides once
// the set is parsed.
func setupFlags(fs *flag.FlagSet) {
	fs.String("conf", "", "path to a JSON configuration file")
	fs.String("format", "", "corpus format (tei/exb)")
	fs.String("lang", "", "language name as used in the settings files")
	fs.String("dir", "", "path to the corpus")
	fs.String("pos", "", "POS tier type")
	fs.String("gloss", "", "gloss tier type")
	fs.String("tags-file", "", "path to the grammatical tag reference table")
	fs.Bool("skip-broken", false, "skip corpus files which cannot be parsed instead of aborting")
	fs.Int("jobs", 0, "max. number of corpus files processed concurrently")
	fs.String("log-level", "", "logging level (debug/info/warn/error)")
	fs.String("log-file", "", "log file path (stderr if empty)")
}

// applyFlagOverrides copies values of explicitly set command line
// options into the configuration, overriding anything loaded from
// a config file.
func applyFlagOverrides(conf *cnf.Conf, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case "format":
			conf.Format = value
		case "lang":
			conf.Language = value
		case "dir":
			conf.CorpusDir = value
		case "pos":
			conf.PosTierType = value
		case "gloss":
			conf.GlossTierType = value
		case "tags-file":
			conf.TagsFile = value
		case "skip-broken":
			conf.SkipBrokenFiles = f.Value.(flag.Getter).Get().(bool)
		case "jobs":
			conf.MaxNumConcurrentJobs = f.Value.(flag.Getter).Get().(int)
		case "log-level":
			conf.LogLevel = logging.LogLevel(value)
		case "log-file":
			conf.LogFile = value
		}
	})
}

func usageText(prog string) string {
	return fmt.Sprintf(
		"GLOSSTOOLS - collect glosses and POS tags from a corpus\n"+
			"and prepare tsakorpus settings files based on them\n\n"+
			"Usage:\n\t%s [options] collect\n\t%s [options] preview\n"+
			"\t%s [options] test\n\t%s [options] version\n",
		prog, prog, prog, prog,
	)
}

func runCollect(conf *cnf.Conf) {
	ex, err := extractor.NewForFormat(
		conf.Format, conf.PosTierType, conf.GlossTierType)
	if err != nil {
		fmt.Println("Only ISO/TEI xml and EXMARaLDA exb are supported at the moment.")
		return
	}
	refTable, err := categories.LoadReferenceTable(conf.TagsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot start corpus processing")
		return
	}
	coll := collector.New(ex, conf.CorpusDir, collector.Options{
		SkipBrokenFiles:      conf.SkipBrokenFiles,
		MaxNumConcurrentJobs: conf.MaxNumConcurrentJobs,
	})
	if err := coll.ProcessCorpus(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to process the corpus")
		return
	}
	cats := categories.Classify(
		conf.Language, coll.PosTags(), coll.Glosses(), refTable)
	emitter := report.NewEmitter(conf.CorpusDir, conf.Language)
	if err := emitter.WriteAll(coll.Glosses(), coll.PosTags(), cats); err != nil {
		log.Fatal().Err(err).Msg("Failed to write the settings files")
	}
}

func main() {
	version := general.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	setupFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText(filepath.Base(os.Args[0])))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "" {
		action = "collect"
	}
	if action == "version" {
		fmt.Printf("glosstools %s\nbuild date: %s\nlast commit: %s\n",
			version.Version, version.BuildDate, version.GitCommit)
		return
	}

	var conf *cnf.Conf
	if confPath := flag.Lookup("conf").Value.String(); confPath != "" {
		conf = cnf.LoadConfig(confPath)

	} else {
		conf = &cnf.Conf{}
	}
	applyFlagOverrides(conf, flag.CommandLine)
	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}
	logging.SetupLogging(conf.LogFile, conf.LogLevel)
	log.Logger = log.Logger.With().Str("runId", uuid.New().String()).Logger()

	if action == "test" {
		cnf.ValidateAndDefaults(conf)
		log.Info().Msg("config OK")
		return
	}

	cnf.ValidateAndDefaults(conf)
	if conf.Format == "" {
		conf.Format = extractor.FormatISOTEI
		log.Warn().Msgf("corpus format not specified, using default: %s", extractor.FormatISOTEI)
	}

	switch action {
	case "collect":
		runCollect(conf)
	case "preview":
		runPreview(conf, version)
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
