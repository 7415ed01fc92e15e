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

package cnf

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltCorpusDir            = "."
	dfltPosTierType          = "ps"
	dfltGlossTierType        = "ge"
	dfltTagsFile             = "data/common_gramm_tags.json"
	dfltMaxNumConcurrentJobs = 1
	dfltListenAddress        = "localhost"
	dfltListenPort           = 8990
	dfltServerReadTimeout    = 30
	dfltServerWriteTimeout   = 30
)

// Conf is a global configuration of the tool. All values can be
// provided via a JSON config file; command line options take
// precedence.
type Conf struct {

	// Format is the corpus format ("tei" for Hamburg ISO/TEI xml,
	// "exb" for EXMARaLDA)
	Format string `json:"format"`

	// Language is the language name as used in the settings files
	Language string `json:"language"`

	// CorpusDir is the directory to scan; output artifacts are
	// written there too
	CorpusDir string `json:"corpusDir"`

	PosTierType   string `json:"posTierType"`
	GlossTierType string `json:"glossTierType"`

	// TagsFile points to the reference table mapping known lowercase
	// grammatical tags to category labels
	TagsFile string `json:"tagsFile"`

	// SkipBrokenFiles enables the warn-and-continue policy for
	// unparsable corpus files (the default is to abort the run)
	SkipBrokenFiles bool `json:"skipBrokenFiles"`

	MaxNumConcurrentJobs int `json:"maxNumConcurrentJobs"`

	ListenAddress          string `json:"listenAddress"`
	ListenPort             int    `json:"listenPort"`
	ServerReadTimeoutSecs  int    `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int    `json:"serverWriteTimeoutSecs"`

	LogFile  string           `json:"logFile"`
	LogLevel logging.LogLevel `json:"logLevel"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if conf.srcPath == "" || filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = sonic.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func ValidateAndDefaults(conf *Conf) {
	if conf.CorpusDir == "" {
		conf.CorpusDir = dfltCorpusDir
		log.Warn().Msg("corpusDir not specified, using current directory")
	}
	if conf.PosTierType == "" {
		conf.PosTierType = dfltPosTierType
		log.Warn().Msgf("posTierType not specified, using default: %s", dfltPosTierType)
	}
	if conf.GlossTierType == "" {
		conf.GlossTierType = dfltGlossTierType
		log.Warn().Msgf("glossTierType not specified, using default: %s", dfltGlossTierType)
	}
	if conf.TagsFile == "" {
		conf.TagsFile = dfltTagsFile
		log.Warn().Msgf("tagsFile not specified, using default: %s", dfltTagsFile)
	}
	if conf.Language == "" {
		log.Warn().Msg("language name not specified, settings files will use an empty name")
	}
	if conf.MaxNumConcurrentJobs == 0 {
		conf.MaxNumConcurrentJobs = dfltMaxNumConcurrentJobs
	}
	if conf.MaxNumConcurrentJobs < 0 {
		log.Fatal().Msg("maxNumConcurrentJobs must not be negative")
	}
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeout
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeout
	}
}
