// Command corvid runs the engine as a UCI front end over stdin/stdout,
// reading commands until EOF or "quit" and logging diagnostics through a
// dedicated zap logger on stderr, since stdout carries only the UCI
// protocol.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/corvidchess/corvid/internal/config"
	"github.com/corvidchess/corvid/uci"
)

var configPath = flag.String("config", "config.toml", "path to the engine defaults file")

func main() {
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	defaults, err := config.LoadDefaults(*configPath)
	if err != nil {
		sugar.Infow("using built-in defaults", "reason", err, "config", *configPath)
	}

	fmt.Printf("info string corvid, built with %s, running on %s\n", runtime.Version(), runtime.GOARCH)

	engine := uci.New(os.Stdout, sugar, defaults)
	engine.Run(os.Stdin)
}
