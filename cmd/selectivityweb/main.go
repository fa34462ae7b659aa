// Command selectivityweb serves the interactive selectivity dashboard.
//
// Configuration comes from an optional YAML file (-config) with AMS_* environment overrides;
// -addr and -log-level win over both. With -watch the file is reloaded on change and new
// slider defaults apply to the next page load.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tkok3/AMS/src/config"
	"github.com/tkok3/AMS/src/dashboard"
	"github.com/tkok3/AMS/src/logging"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	addr := flag.String("addr", "", "Listen address, overrides web.listen_address")
	logLevel := flag.String("log-level", "", "Log level (debug|info|warn|error), overrides log_level")
	watch := flag.Bool("watch", false, "Reload the configuration file when it changes")
	flag.Parse()

	if err := run(*configPath, *addr, *logLevel, *watch); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr, logLevel string, watch bool) error {
	cfg, err := config.LoadWithEnvOverrides(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Web.ListenAddress = addr
	}
	if logLevel != "" {
		if !logging.ValidLevel(logLevel) {
			return fmt.Errorf("unknown log level %q", logLevel)
		}
		cfg.LogLevel = logLevel
	}
	logging.SetLogLevel(cfg.LogLevel)

	srv, err := dashboard.NewServer(dashboard.ServerConfig{Config: cfg})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch && configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, config.DefaultDebounce, func(next *config.Config) {
				// flags keep priority over reloaded values
				if addr != "" {
					next.Web.ListenAddress = addr
				}
				if logLevel != "" {
					next.LogLevel = logLevel
				}
				srv.SetConfig(next)
			})
			if err != nil {
				logging.Errorf("config watch stopped: %v", err)
			}
		}()
	}
	return srv.Start(ctx)
}
