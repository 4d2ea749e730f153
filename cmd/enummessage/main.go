// Command enummessage generates Message, DetailedMessage and Serializations
// accessors for annotated enums.
//
//	//go:generate enummessage generate
package main

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/logger"
)

func main() {
	userCfg := findUserConfig(os.Args[1:])

	var cli CLI
	opts := []kong.Option{
		kong.Name("enummessage"),
		kong.Description("Generate message accessors for annotated Go enums"),
		kong.UsageOnError(),
	}
	// command line flags override config file values
	opts = append(opts, configurationOptions(config.CandidatePaths(userCfg))...)
	ctx := kong.Parse(&cli, opts...)

	log, closeFiles, err := logger.Setup(cli.LogLevel, cli.LogFile)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(log)
	ctx.BindTo(os.Stdout, (*io.Writer)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if after, ok := strings.CutPrefix(a, "--config="); ok {
			return after
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("ENUMMESSAGE_CONFIG"); v != "" {
		return v
	}
	return ""
}
