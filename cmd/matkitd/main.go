// Package main is the entry point for the matkitd overlay daemon.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/bugph0bia/go-logging"
	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/matkit/internal/audio"
	"github.com/jmylchreest/matkit/internal/config"
	"github.com/jmylchreest/matkit/internal/daemon"
	"github.com/jmylchreest/matkit/internal/dbus"
	"github.com/jmylchreest/matkit/internal/display"
	"github.com/jmylchreest/matkit/internal/overlay"
	"github.com/jmylchreest/matkit/internal/theme"
)

const appID = "io.github.jmylchreest.matkitd"

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Path to matkitd.toml (default $XDG_CONFIG_HOME/matkit/matkitd.toml)")
	logFile := flag.String("log-file", "", "Write logs to a size-rotated file instead of stderr only")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("matkitd version", version)
		os.Exit(0)
	}

	logger := setupLogging(*logFile, *verbose)

	if err := config.LoadEnvFile(config.EnvFilePath()); err != nil {
		logger.Warn("failed to load env file", "error", err)
	}

	path := *configPath
	if path == "" {
		p, err := config.DaemonConfigPath()
		if err != nil {
			logger.Error("failed to resolve config path", "error", err)
			os.Exit(1)
		}
		path = p
	}

	cfg, err := config.LoadDaemonConfig(path)
	if err != nil {
		logger.Error("failed to load config", "path", path, "error", err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		logger.Error("invalid environment override", "error", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, path, logger))
}

// setupLogging installs the default logger. With a log file, go-logging
// rotates the file and mirrors to stdout.
func setupLogging(logFile string, verbose bool) *slog.Logger {
	if logFile != "" {
		logging.MaxSizeMB = 8
		logging.WithStdout = true
		logger := logging.NewLogger(logFile)
		slog.SetDefault(logger)
		return logger
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

func run(cfg *config.DaemonConfig, configPath string, logger *slog.Logger) int {
	logger.Info("starting matkitd", "version", version, "config", configPath)

	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		d             *daemon.Daemon
		host          *display.Host
		server        *dbus.Server
		audioManager  *audio.Manager
		configWatcher *daemon.ConfigWatcher
		running       atomic.Bool
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := func() {
		if configWatcher != nil {
			configWatcher.Stop()
		}
		if server != nil {
			_ = server.Stop()
		}
		if audioManager != nil {
			audioManager.Stop()
		}
		if d != nil {
			d.Stop()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
		display.Dispatch(func() {
			if running.Load() {
				app.Quit()
			}
		})
	}()

	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		themesDir, err := theme.ThemesDir()
		if err != nil {
			logger.Warn("failed to resolve themes directory, using bundled themes only", "error", err)
		}
		themes := theme.NewLoader(themesDir, logger)

		host = display.NewHost(&app.Application, cfg.Display.Monitor, logger)
		d = daemon.New(cfg, host, overlay.NewScheduler(display.Dispatch), themes, logger)
		d.SetDispatcher(display.Dispatch)
		d.SetSystemDark(display.SystemDark)
		d.ReloadTheme()
		host.SetHandler(d.Manager())

		audioManager = audio.NewManager(cfg, logger)
		audioManager.SetErrorCallback(func(err error) {
			display.Dispatch(func() { d.Notifier().NotifyAudioError(err) })
		})
		audioManager.Start(ctx)
		d.Manager().OnShown(audioManager.HandleShown)

		server = dbus.NewServer(d, logger)
		server.SetInvoker(display.Invoke)
		d.Manager().OnDismissed(server.HandleDismissed)
		if err := server.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			app.Quit()
			return
		}

		configWatcher, err = daemon.NewConfigWatcher(configPath, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(next *config.DaemonConfig) {
				display.Dispatch(func() {
					host.SetMonitor(next.Display.Monitor)
					audioManager.UpdateConfig(next)
					d.ApplyConfig(next)
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				display.Dispatch(func() { d.HandleConfigError(err) })
			})
			if err := configWatcher.Start(ctx, cfg); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		logger.Info("matkitd ready", "dbus_interface", dbus.DBusInterface, "theme", themes.CurrentTheme())
		d.Notifier().NotifyStartup(version)

		// GTK apps quit when their last window closes; overlays come and go.
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		stop()
		running.Store(false)
	})

	status := app.Run(os.Args[:1])
	if status != 0 {
		logger.Error("application exited with error", "status", status)
	}
	return status
}
