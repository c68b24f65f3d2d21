package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iov-one/trinity"
	"github.com/iov-one/trinity/cmd/trinityd/app"
	"github.com/iov-one/trinity/commands"
	"github.com/iov-one/trinity/commands/server"
	"github.com/iov-one/trinity/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	flagHome = "home"
	varHome  *string
)

func helpMessage() {
	fmt.Println("trinityd")
	fmt.Println("          Two-party challenge engine ABCI application")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app_state of genesis files")
	fmt.Println("testgen   Write example encodings to a directory")
	fmt.Println("addr      Print the address of a hex encoded public key")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$TRINITY_HOME" or "$HOME/.trinity")`)
}

func main() {
	conf, err := LoadConfig()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
	logger, err := conf.Logger()
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}

	varHome = flag.String(flagHome, conf.Home, "directory to store files under")
	flag.CommandLine.Usage = helpMessage
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, server.Options{
			Home:        *varHome,
			Logger:      logger,
			Debug:       conf.Debug,
			Bind:        conf.Bind,
			MetricsAddr: conf.MetricsAddr,
			Registerer:  prometheus.DefaultRegisterer,
		}, rest)
	case "validate":
		paths := rest
		if len(paths) == 0 {
			paths = []string{server.GenesisFile(*varHome)}
		}
		err = server.ValidateGenesis(app.Initializers(), paths)
	case "testgen":
		err = commands.TestGenCmd(app.Examples(), rest)
	case "addr":
		err = AddrCmd(os.Stdout, rest)
	case "version":
		fmt.Println(trinity.Version())
	default:
		err = errors.Wrapf(errors.ErrInvalidInput, "unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
