package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"
)

var rootCmd = &cobra.Command{
	Use:   "refl",
	Short: "Specular reflectivity of layered samples",
	Long: `refl computes neutron and X-ray specular reflectivity R(q) of slab models
with the Abeles matrix method, from the command line or over a websocket.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// conf is the parsed configuration, set before any subcommand runs.
var conf *ini.File

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calcCmd)

	rootCmd.PersistentFlags().String("config", "conf/config.ini", "path to the ini configuration")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", path).Warn("config file not found, using defaults")
		conf = ini.Empty()
	} else if conf, err = ini.Load(path); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	level, err := log.ParseLevel(conf.Section("log").Key("Level").MustString("info"))
	if err != nil {
		log.WithError(err).Warn("log level ignored")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	return nil
}
