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
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/timarkh/tsakorpus-additional-tools/cnf"
	"github.com/timarkh/tsakorpus-additional-tools/general"
	"github.com/timarkh/tsakorpus-additional-tools/report"
)

// previewServer serves the artifacts generated by a `collect` run so
// an operator can inspect them before feeding the corpus to tsakorpus.
// It never modifies anything in the corpus directory.
type previewServer struct {
	server  *http.Server
	conf    *cnf.Conf
	version general.VersionInfo
}

func (ps *previewServer) serverInfo(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{
		"name":      "glosstools",
		"version":   ps.version,
		"corpusDir": ps.conf.CorpusDir,
	})
}

type artifactOverview struct {
	NumGlosses    int            `json:"numGlosses"`
	NumCategories map[string]int `json:"numCategories"`
}

func (ps *previewServer) overview(ctx *gin.Context) {
	var ans artifactOverview

	rawData, err := os.ReadFile(filepath.Join(ps.conf.CorpusDir, report.ConvSettingsFile))
	if err != nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("failed to read conversion settings (did you run `collect`?): %w", err),
			http.StatusNotFound,
		)
		return
	}
	var settings struct {
		Glosses []string `json:"glosses"`
	}
	if err := sonic.Unmarshal(rawData, &settings); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	ans.NumGlosses = len(settings.Glosses)

	rawData, err = os.ReadFile(filepath.Join(ps.conf.CorpusDir, report.CategoriesFile))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	var cats map[string]map[string]string
	if err := sonic.Unmarshal(rawData, &cats); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	ans.NumCategories = make(map[string]int)
	for lang, tags := range cats {
		ans.NumCategories[lang] = len(tags)
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (ps *previewServer) glossReport(ctx *gin.Context) {
	path := filepath.Join(ps.conf.CorpusDir, report.GlossHTMLFile)
	isFile, err := fs.IsFile(path)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	if !isFile {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("no gloss report found (did you run `collect`?)"),
			http.StatusNotFound,
		)
		return
	}
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.File(path)
}

func (ps *previewServer) createEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	engine.GET("/", ps.serverInfo)
	engine.GET("/overview", ps.overview)
	engine.GET("/report", ps.glossReport)
	return engine
}

func (ps *previewServer) Start(ctx context.Context) {
	if !ps.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := ps.createEngine()

	log.Info().Msgf("starting to listen at %s:%d", ps.conf.ListenAddress, ps.conf.ListenPort)
	ps.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", ps.conf.ListenAddress, ps.conf.ListenPort),
		WriteTimeout: time.Duration(ps.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(ps.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := ps.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (ps *previewServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down the preview server")
	return ps.server.Shutdown(ctx)
}

func runPreview(conf *cnf.Conf, version general.VersionInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &previewServer{
		conf:    conf,
		version: version,
	}
	server.Start(ctx)
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down the preview server properly")
	}
}
