package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"refl/cache"
	"refl/calculator"
	"refl/qgrid"
	"refl/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reflectivity curves over a websocket",
	Long: `Serve listens on the configured address and answers stack, grid, start
and stop messages on /ws until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	calcCfg := calculator.LoadConfig(conf)
	srvCfg := server.LoadConfig(conf)
	grid := qgrid.FromConfig(conf)
	if err := grid.Validate(); err != nil {
		return fmt.Errorf("[grid]: %w", err)
	}

	memo := cache.New(calcCfg.CacheCapacity)
	if calcCfg.CacheSnapshot != "" {
		ok, err := memo.Load(calcCfg.CacheSnapshot)
		if err != nil {
			log.WithError(err).Warn("memo snapshot ignored")
		} else if ok {
			log.WithFields(log.Fields{
				"path":    calcCfg.CacheSnapshot,
				"entries": memo.Len(),
			}).Info("memo snapshot loaded")
		}
	}
	calc := calculator.New(calcCfg, calculator.WithMemo(memo))

	log.WithFields(log.Fields{
		"workers":  calcCfg.Workers,
		"minChunk": calcCfg.MinChunk,
		"memo":     calcCfg.CacheCapacity,
	}).Info("calculator ready")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.NewServer(srvCfg.Addr, srvCfg.Upgrader(), calc, grid)
	err := s.Serve(ctx)

	if calcCfg.CacheSnapshot != "" {
		if err := memo.Save(calcCfg.CacheSnapshot); err != nil {
			log.WithError(err).Warn("memo snapshot not saved")
		} else {
			hits, misses := memo.Stats()
			log.WithFields(log.Fields{
				"path":   calcCfg.CacheSnapshot,
				"hits":   hits,
				"misses": misses,
			}).Info("memo snapshot saved")
		}
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
