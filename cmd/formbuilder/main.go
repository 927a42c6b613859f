package main

import (
	"fmt"
	"io"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/goliatone/go-formbuilder/internal/app"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/logging"
)

type globals struct {
	configPath string
	logLevel   string
	addr       string
	locale     string
	console    bool

	in   io.Reader
	out  io.Writer
	errs io.Writer

	appOptions []app.Option
}

func main() {
	impl(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Exit)
}

func impl(args []string, in io.Reader, out, errs io.Writer, exit func(int), appOptions ...app.Option) {
	g := &globals{in: in, out: out, errs: errs, appOptions: appOptions}

	kp := kingpin.New("formbuilder", "Builds single page HTML forms that post to a webhook and publishes them over WebDAV.")
	kp.ErrorWriter(errs)
	kp.UsageWriter(errs)
	kp.Terminate(exit)

	kp.Flag("config", "YAML configuration file.").Short('c').PlaceHolder("formbuilder.yaml").StringVar(&g.configPath)
	logLevel := kp.Flag("log-level", "Verbosity of logging to print.").Enum(logging.Levels...)
	kp.Flag("addr", "Address the server listens on.").StringVar(&g.addr)
	kp.Flag("locale", "Language of the generated form and the builder.").StringVar(&g.locale)
	kp.Flag("console", "Human readable log output.").Default("true").BoolVar(&g.console)

	kp.PreAction(func(*kingpin.ParseContext) error {
		g.logLevel = *logLevel
		logging.SetDefault(logging.New(errs, g.console))
		return nil
	})

	serveCommand(kp, g)
	buildCommand(kp, g)
	renderCommand(kp, g)
	publishCommand(kp, g)
	probeCommand(kp, g)

	if len(args) == 0 {
		kp.Usage(args)
		return
	}

	if _, err := kp.Parse(args); err != nil {
		fmt.Fprintln(errs, err.Error())
		exit(1)
	}
}

// loadConfig reads the config file and applies command line overrides.
func (g *globals) loadConfig() (config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.addr != "" {
		cfg.Addr = g.addr
	}
	if g.locale != "" {
		cfg.Locale = g.locale
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if err := logging.SetGlobalLevelFromString(cfg.LogLevel); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newApp loads the config, lets mutate adjust it, and assembles the app.
func (g *globals) newApp(mutate func(*config.Config)) (*app.App, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	opts := append([]app.Option{app.WithLogger(logging.Default())}, g.appOptions...)
	return app.New(cfg, opts...)
}
