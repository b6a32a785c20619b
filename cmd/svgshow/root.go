package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benoitkugler/svgshow/svgraster"
	"github.com/benoitkugler/svgshow/svgscene"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// config is the content of the configuration file,
// also filled by the flags and the SVGSHOW_* environment variables.
type config struct {
	Viewport struct {
		Width  float64 `mapstructure:"width"`
		Height float64 `mapstructure:"height"`
	} `mapstructure:"viewport"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	ErrorMode string `mapstructure:"error_mode"`
	Preview   struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"preview"`
}

// app is shared by the sub commands
type app struct {
	v       *viper.Viper
	cfgFile string

	cfg       config
	errorMode svgscene.ErrorMode
	format    svgraster.Format
	log       *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	root := &cobra.Command{
		Use:           "svgshow",
		Short:         "svgshow shows SVG documents as zoomable presentations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.log.SetOutput(cmd.ErrOrStderr())
			return a.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./svgshow.yaml)")
	flags.Float64("width", 1024, "viewport width, in pixels")
	flags.Float64("height", 768, "viewport height, in pixels")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("error-mode", "warn", "reaction to unsupported SVG content (ignore, warn, strict)")
	flags.String("preview-format", "png", "format of the preview images (png, webp)")

	for key, flag := range map[string]string{
		"viewport.width":  "width",
		"viewport.height": "height",
		"log.level":       "log-level",
		"error_mode":      "error-mode",
		"preview.format":  "preview-format",
	} {
		if err := a.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err) // flags are defined just above
		}
	}

	root.AddCommand(newShowCmd(a), newGeometryCmd(a), newFramesCmd(a))
	return root
}

// initialize reads in config file and ENV variables if set.
func (a *app) initialize() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("svgshow")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("SVGSHOW")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}

	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	level, err := logrus.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	a.log.SetLevel(level)
	a.log.SetFormatter(&prefixed.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	})

	if a.errorMode, err = parseErrorMode(a.cfg.ErrorMode); err != nil {
		return err
	}
	if a.format, err = svgraster.ParseFormat(a.cfg.Preview.Format); err != nil {
		return err
	}
	if a.cfg.Viewport.Width <= 0 || a.cfg.Viewport.Height <= 0 {
		return fmt.Errorf("invalid viewport size %gx%g", a.cfg.Viewport.Width, a.cfg.Viewport.Height)
	}
	return nil
}

func parseErrorMode(s string) (svgscene.ErrorMode, error) {
	switch strings.ToLower(s) {
	case "ignore":
		return svgscene.IgnoreErrorMode, nil
	case "warn", "":
		return svgscene.WarnErrorMode, nil
	case "strict":
		return svgscene.StrictErrorMode, nil
	default:
		return 0, fmt.Errorf("invalid error mode %q", s)
	}
}

func (a *app) sceneOptions() svgscene.Options {
	return svgscene.Options{ErrorMode: a.errorMode, Logger: a.log}
}
