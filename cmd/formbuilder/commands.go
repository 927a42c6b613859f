package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/goliatone/go-formbuilder/internal/cli"
	"github.com/goliatone/go-formbuilder/internal/config"
	"github.com/goliatone/go-formbuilder/internal/prompt"
	"github.com/goliatone/go-formbuilder/internal/server"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/jsonexport"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-quit:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(quit)
	}()
	return ctx, cancel
}

func serveCommand(parent *kingpin.Application, g *globals) {
	kc := parent.Command("serve", "Starts the builder web interface.")
	noValidate := kc.Flag("no-validate", "Skip request schema validation on /api routes.").Bool()
	kc.Action(func(*kingpin.ParseContext) error {
		a, err := g.newApp(nil)
		if err != nil {
			return err
		}
		var opts []server.Option
		if *noValidate {
			opts = append(opts, server.WithoutValidation())
		}
		srv, err := server.New(a, opts...)
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()
		return srv.ListenAndServe(ctx)
	})
}

func buildCommand(parent *kingpin.Application, g *globals) {
	kc := parent.Command("build", "Edits a form interactively in the terminal.")
	fields := kc.Flag("fields", "Field file (YAML or JSON) to start from.").ExistingFile()
	kc.Action(func(*kingpin.ParseContext) error {
		a, err := g.newApp(func(cfg *config.Config) {
			if *fields != "" {
				cfg.FieldsFile = *fields
			}
		})
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()
		b := cli.New(a.Session, prompt.NewSurvey(g.out), cli.WithMessages(a.Message))
		return b.Run(ctx)
	})
}

func renderCommand(parent *kingpin.Application, g *globals) {
	kc := parent.Command("render", "Renders a field file to a standalone HTML page or JSON export.")
	fields := kc.Flag("fields", "Field file (YAML or JSON). Defaults to the starter fields.").ExistingFile()
	submitURL := kc.Flag("submit-url", "Webhook the page posts to. Defaults to the configured webhook.").String()
	title := kc.Flag("title", "Page title override.").String()
	format := kc.Flag("format", "Output format.").Default("html").Enum("html", jsonexport.Name)
	output := kc.Flag("output", "Output file (stdout if empty).").Short('o').String()
	kc.Action(func(*kingpin.ParseContext) error {
		a, err := g.newApp(func(cfg *config.Config) {
			if *fields != "" {
				cfg.FieldsFile = *fields
			}
		})
		if err != nil {
			return err
		}

		registry := render.NewRegistry()
		registry.MustRegister(a.Renderer)
		registry.MustRegister(jsonexport.New())

		url := strings.TrimSpace(*submitURL)
		if url == "" {
			url = a.Config.Webhook.WebhookURL
		}
		opts := a.RenderOptions()
		opts.Title = *title

		body, _, err := registry.Render(context.Background(), *format, render.Page{
			Fields:    a.Session.Fields(),
			SubmitURL: url,
		}, opts)
		if err != nil {
			return err
		}
		return g.write(*output, body, a.Message)
	})
}

func publishCommand(parent *kingpin.Application, g *globals) {
	kc := parent.Command("publish", "Uploads a form to the WebDAV share at web/<scope>/<name>/index.html.")
	fields := kc.Flag("fields", "Field file (YAML or JSON) to render.").ExistingFile()
	htmlFile := kc.Flag("html", "Upload this HTML file instead of rendering fields.").ExistingFile()
	baseURL := kc.Flag("base-url", "WebDAV base URL.").String()
	username := kc.Flag("username", "WebDAV user.").String()
	password := kc.Flag("password", "WebDAV password.").Envar("FORMBUILDER_DAV_PASSWORD").String()
	scope := kc.Flag("scope", "Publication scope.").Enum(publish.Scopes()...)
	name := kc.Flag("name", "Form name used in the path.").String()
	kc.Action(func(*kingpin.ParseContext) error {
		a, err := g.newApp(func(cfg *config.Config) {
			if *fields != "" {
				cfg.FieldsFile = *fields
			}
			t := &cfg.Publish
			setIf(&t.BaseURL, *baseURL)
			setIf(&t.Username, *username)
			setIf(&t.Password, *password)
			setIf(&t.Scope, *scope)
			setIf(&t.FormName, *name)
		})
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		var result publish.Result
		if *htmlFile != "" {
			body, readErr := os.ReadFile(*htmlFile)
			if readErr != nil {
				return readErr
			}
			result, err = a.Gateway.Publish(ctx, a.Config.Publish, body)
		} else {
			result, err = a.Session.Publish(ctx)
		}
		if err != nil && !errors.Is(err, publish.ErrMissingDAV) && !errors.Is(err, publish.ErrMissingPath) {
			return err
		}
		if !result.OK {
			return fmt.Errorf("%s%s", a.Message("ui_upload_failed"), result.Error)
		}
		_, err = fmt.Fprintln(g.out, a.Message("ui_uploaded")+result.Path)
		return err
	})
}

func probeCommand(parent *kingpin.Application, g *globals) {
	kc := parent.Command("probe", "Sends an OPTIONS request to the webhook to check it is reachable.")
	url := kc.Flag("url", "Webhook URL. Defaults to the configured webhook.").String()
	username := kc.Flag("username", "Webhook user.").String()
	password := kc.Flag("app-password", "Webhook app password.").Envar("FORMBUILDER_WEBHOOK_PASSWORD").String()
	kc.Action(func(*kingpin.ParseContext) error {
		a, err := g.newApp(nil)
		if err != nil {
			return err
		}
		cfg := a.Config.Webhook
		setIf(&cfg.WebhookURL, *url)
		setIf(&cfg.Username, *username)
		setIf(&cfg.AppPassword, *password)

		result, err := a.Prober.Probe(context.Background(), cfg)
		if err != nil && !errors.Is(err, webhook.ErrMissingURL) {
			return err
		}
		if !result.OK {
			return fmt.Errorf("%s%s", a.Message("ui_failed"), result.Error)
		}
		_, err = fmt.Fprintln(g.out, a.Message("ui_webhook_ok"))
		return err
	})
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func (g *globals) write(path string, body []byte, msg func(string, ...map[string]any) string) error {
	if path == "" {
		_, err := g.out.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return err
	}
	_, err := fmt.Fprintln(g.errs, msg("cli_saved", map[string]any{"Path": path}))
	return err
}
