package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/config"
	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nutriglow",
	Short: "NutriGlow Wellness website",
	Long: `Serves the NutriGlow Wellness nutrition coaching site: home, about,
programs and pricing, the resource blog and the contact page. The export
command renders every page to static HTML.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// bootstrap loads configuration, builds the logger and wires the app.
// override runs after loading so flags can win over file and env values.
func bootstrap(override func(*config.Config)) (*zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if override != nil {
		override(cfg)
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	logger, err := observability.NewLogger(observability.Options{Level: level, Development: cfg.Log.Development})
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	if err := setupApp(cfg, logger, nil); err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return logger, nil
}
