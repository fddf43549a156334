package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/matkit/internal/config"
)

var configOpts struct {
	daemon bool
	force  bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and manage configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		daemonPath, err := config.DaemonConfigPath()
		if err != nil {
			return err
		}
		cliPath := globalOpts.configPath
		if cliPath == "" {
			cliPath = config.ConfigPath()
		}
		fmt.Printf("cli:    %s\n", cliPath)
		fmt.Printf("daemon: %s\n", daemonPath)
		fmt.Printf("env:    %s\n", config.EnvFilePath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Print the effective configuration as TOML, with defaults filled in.

With --daemon the matkitd configuration is shown, including overrides from
the environment and the env file.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Check a matkitd configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default matkitd configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configValidateCmd, configInitCmd)

	configShowCmd.Flags().BoolVar(&configOpts.daemon, "daemon", false,
		"Show the matkitd configuration")
	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing file")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var v any = getConfig()
	if configOpts.daemon {
		if err := config.LoadEnvFile(config.EnvFilePath()); err != nil {
			logger.Warn("failed to load env file", "error", err)
		}
		dc, err := config.LoadDaemonConfig("")
		if err != nil {
			return err
		}
		if err := dc.ApplyEnv(); err != nil {
			return err
		}
		v = dc
	}

	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		p, err := config.DaemonConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	if _, err := config.LoadDaemonConfig(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.DaemonConfigPath()
	if err != nil {
		return err
	}

	if !configOpts.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	if err := config.SaveDaemonConfig(config.DefaultDaemonConfig(), path); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
