package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/codewords-game/codewords/server"
)

// flags holds the command line configuration before it is turned into a
// server config.
type flags struct {
	bind        string
	port        int
	queueSize   int
	pingPeriod  time.Duration
	readWait    time.Duration
	writeWait   time.Duration
	stopTimeout time.Duration
	debug       bool
}

// serverConfig converts the flags to a server configuration.
func (f *flags) serverConfig() server.Config {
	return server.Config{
		Bind:       f.bind,
		Port:       f.port,
		StopDur:    f.stopTimeout,
		QueueSize:  f.queueSize,
		PingPeriod: f.pingPeriod,
		WriteWait:  f.writeWait,
		ReadWait:   f.readWait,
		Debug:      f.debug,
		Version:    releaseVersion,
	}
}

// newCmd creates the root command.  Every flag can also be set through a
// CODEWORDS_-prefixed environment variable.
func newCmd(f *flags) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CODEWORDS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "codewords BOARD_FILE",
		Short:   "A websocket server for a team word-guessing game.",
		Args:    cobra.ExactArgs(1),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), f, args[0])
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&f.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CODEWORDS_BIND)")
	fs.IntVarP(&f.port, "port", "p", 8080, "port to listen on (env: CODEWORDS_PORT)")
	fs.IntVar(&f.queueSize, "queue-size", 64, "outbound messages buffered per connection before it is dropped (env: CODEWORDS_QUEUE_SIZE)")
	fs.DurationVar(&f.pingPeriod, "ping-period", 15*time.Second, "how often connections are pinged (env: CODEWORDS_PING_PERIOD)")
	fs.DurationVar(&f.readWait, "read-wait", 60*time.Second, "how long a connection may stay silent before it is dropped (env: CODEWORDS_READ_WAIT)")
	fs.DurationVar(&f.writeWait, "write-wait", 10*time.Second, "how long a single write may take before the connection is dropped (env: CODEWORDS_WRITE_WAIT)")
	fs.DurationVar(&f.stopTimeout, "stop-timeout", 5*time.Second, "how long to wait for a graceful shutdown (env: CODEWORDS_STOP_TIMEOUT)")
	fs.BoolVar(&f.debug, "debug", false, "log the messages read and written on each connection (env: CODEWORDS_DEBUG)")

	fs.VisitAll(func(fl *pflag.Flag) {
		_ = v.BindPFlag(fl.Name, fl)
		_ = v.BindEnv(fl.Name)
		if !fl.Changed && v.IsSet(fl.Name) {
			_ = fs.Set(fl.Name, fmt.Sprintf("%v", v.Get(fl.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("codewords v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
