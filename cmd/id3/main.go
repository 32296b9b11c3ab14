package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	log        *logrus.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "id3",
		Short: "id3 is a tool to grow decision trees from categorical data",
		Long:  `A tool to grow ID3 decision trees from categorical data, test them, and use them to classify new samples`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.log = newLogger(cmd.ErrOrStderr(), config.verbose)
			if config.configFile != "" {
				config.Logf("Reading configuration from %s...", config.configFile)
				return applyConfigFile(cmd, config.configFile)
			}
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug information about every step")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YML, JSON or TOML file with values for the flags that are not set")
	rootCmd.AddCommand(versionCmd(), trainCmd(config), predictCmd(config), testCmd(config), treeCmd(config), datasetCmd(config))
	return rootCmd
}

// Logf logs progress information.
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.logger().Infof(format, a...)
}

func (rcc *rootCmdConfig) logger() *logrus.Logger {
	if rcc.log == nil {
		rcc.log = newLogger(os.Stderr, rcc.verbose)
	}
	return rcc.log
}

// Context returns the context for the running command, which is cancelled on interrupt.
func (rcc *rootCmdConfig) Context() context.Context {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			select {
			case <-c:
				rcc.logger().Warn("Interrupted, cancelling...")
				rcc.cancelFunc()
			case <-rcc.ctx.Done():
			}
			signal.Stop(c)
		}()
	}
	return rcc.ctx
}

func (rcc *rootCmdConfig) exit(code int, err error) {
	if rcc.cancelFunc != nil {
		rcc.cancelFunc()
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
