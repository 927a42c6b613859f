// Package cli drives a builder.Session from the terminal: the same edit,
// test, publish and download actions the web screen offers, asked one
// prompt at a time.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/internal/prompt"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/publish"
	"github.com/goliatone/go-formbuilder/pkg/webhook"
)

// Messages resolves a message key, optionally with template data.
type Messages func(key string, data ...map[string]any) string

type action string

const (
	actionShow     action = "cli_action_show"
	actionAdd      action = "cli_action_add"
	actionEdit     action = "cli_action_edit"
	actionMove     action = "cli_action_move"
	actionRemove   action = "cli_action_remove"
	actionWebhook  action = "cli_action_webhook"
	actionTarget   action = "cli_action_target"
	actionTest     action = "cli_action_test"
	actionPublish  action = "cli_action_publish"
	actionDownload action = "cli_action_download"
	actionQuit     action = "cli_action_quit"
)

var actions = []action{
	actionShow,
	actionAdd,
	actionEdit,
	actionMove,
	actionRemove,
	actionWebhook,
	actionTarget,
	actionTest,
	actionPublish,
	actionDownload,
	actionQuit,
}

type Option func(*Builder)

// WithMessages sets the translator for prompt texts. Without one the keys
// themselves are shown.
func WithMessages(m Messages) Option {
	return func(b *Builder) {
		if m != nil {
			b.msg = m
		}
	}
}

// WithWriteFile replaces os.WriteFile for the download action.
func WithWriteFile(fn func(name string, data []byte, perm os.FileMode) error) Option {
	return func(b *Builder) {
		if fn != nil {
			b.writeFile = fn
		}
	}
}

// Builder is the interactive loop.
type Builder struct {
	session   *builder.Session
	driver    prompt.Driver
	msg       Messages
	writeFile func(name string, data []byte, perm os.FileMode) error
}

func New(session *builder.Session, driver prompt.Driver, opts ...Option) *Builder {
	b := &Builder{
		session:   session,
		driver:    driver,
		msg:       func(key string, _ ...map[string]any) string { return key },
		writeFile: os.WriteFile,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Run asks for actions until the user quits or aborts. Action failures are
// reported and the loop continues; prompt failures end it.
func (b *Builder) Run(ctx context.Context) error {
	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = b.msg(string(a))
	}

	for {
		idx, err := b.driver.Select(ctx, prompt.SelectConfig{
			Message:  b.msg("cli_action_prompt"),
			Options:  labels,
			PageSize: len(labels),
		})
		if err != nil {
			return quiet(err)
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}
		a := actions[idx]
		if a == actionQuit {
			return nil
		}
		if err := b.do(ctx, a); err != nil {
			if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
				return quiet(err)
			}
			if infoErr := b.info(ctx, b.msg("ui_failed")+err.Error()); infoErr != nil {
				return infoErr
			}
		}
	}
}

func quiet(err error) error {
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	return err
}

func (b *Builder) do(ctx context.Context, a action) error {
	switch a {
	case actionShow:
		return b.show(ctx)
	case actionAdd:
		return b.add(ctx)
	case actionEdit:
		return b.edit(ctx)
	case actionMove:
		return b.move(ctx)
	case actionRemove:
		return b.remove(ctx)
	case actionWebhook:
		return b.configureWebhook(ctx)
	case actionTarget:
		return b.configureTarget(ctx)
	case actionTest:
		return b.test(ctx)
	case actionPublish:
		return b.publish(ctx)
	case actionDownload:
		return b.download(ctx)
	}
	return nil
}

func (b *Builder) info(ctx context.Context, msg string) error {
	return b.driver.Info(ctx, msg)
}

func (b *Builder) show(ctx context.Context) error {
	state := b.session.State()
	if len(state.Fields) == 0 {
		return b.info(ctx, b.msg("cli_no_fields"))
	}
	var sb strings.Builder
	for i, f := range state.Fields {
		fmt.Fprintf(&sb, "%d. [%s] %s (%s)", i+1, f.Type, f.Label, f.Name)
		if f.Required {
			sb.WriteString(" *")
		}
		if i < len(state.Fields)-1 {
			sb.WriteByte('\n')
		}
	}
	if len(state.DuplicateNames) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(b.msg("ui_duplicate_names") + strings.Join(state.DuplicateNames, ", "))
	}
	return b.info(ctx, sb.String())
}

func (b *Builder) add(ctx context.Context) error {
	types := model.FieldTypes()
	options := make([]string, len(types))
	for i, t := range types {
		options[i] = string(t)
	}
	idx, err := b.driver.Select(ctx, prompt.SelectConfig{Message: b.msg("cli_field_type"), Options: options})
	if err != nil {
		return err
	}
	if idx < 0 {
		return nil
	}
	_, err = b.session.AddField(types[idx])
	return err
}

// pickField asks for a field. ok is false when there are none.
func (b *Builder) pickField(ctx context.Context) (model.Field, bool, error) {
	fields := b.session.Fields()
	if len(fields) == 0 {
		return model.Field{}, false, b.info(ctx, b.msg("cli_no_fields"))
	}
	options := make([]string, len(fields))
	for i, f := range fields {
		options[i] = fmt.Sprintf("%d. %s (%s)", i+1, f.Label, f.Name)
	}
	idx, err := b.driver.Select(ctx, prompt.SelectConfig{Message: b.msg("cli_select_field"), Options: options})
	if err != nil || idx < 0 {
		return model.Field{}, false, err
	}
	return fields[idx], true, nil
}

func (b *Builder) remove(ctx context.Context) error {
	field, ok, err := b.pickField(ctx)
	if err != nil || !ok {
		return err
	}
	return b.session.RemoveField(field.ID)
}

func (b *Builder) move(ctx context.Context) error {
	field, ok, err := b.pickField(ctx)
	if err != nil || !ok {
		return err
	}
	idx, err := b.driver.Select(ctx, prompt.SelectConfig{
		Message: b.msg("cli_direction"),
		Options: []string{b.msg("ui_move_up"), b.msg("ui_move_down")},
	})
	if err != nil {
		return err
	}
	dir := editor.Up
	if idx == 1 {
		dir = editor.Down
	}
	return b.session.MoveField(field.ID, dir)
}

func (b *Builder) edit(ctx context.Context) error {
	field, ok, err := b.pickField(ctx)
	if err != nil || !ok {
		return err
	}
	attrs := editor.Attributes()
	options := make([]string, len(attrs))
	for i, a := range attrs {
		options[i] = string(a)
	}
	idx, err := b.driver.Select(ctx, prompt.SelectConfig{Message: b.msg("cli_attribute"), Options: options, PageSize: len(options)})
	if err != nil || idx < 0 {
		return err
	}
	attr := attrs[idx]

	value, err := b.askValue(ctx, field, attr)
	if err != nil {
		return err
	}
	return b.session.UpdateField(field.ID, attr, value)
}

func (b *Builder) askValue(ctx context.Context, field model.Field, attr editor.Attribute) (any, error) {
	message := b.msg("cli_value")
	switch attr {
	case editor.AttrRequired, editor.AttrHidden, editor.AttrDefaultChecked:
		return b.driver.Confirm(ctx, prompt.ConfirmConfig{Message: message, Default: boolAttr(field, attr)})
	case editor.AttrOptions:
		return b.driver.TextArea(ctx, prompt.TextAreaConfig{Message: message, Default: strings.Join(field.Options, "\n")})
	case editor.AttrType:
		types := model.FieldTypes()
		options := make([]string, len(types))
		current := 0
		for i, t := range types {
			options[i] = string(t)
			if t == field.Type {
				current = i
			}
		}
		idx, err := b.driver.Select(ctx, prompt.SelectConfig{Message: message, Options: options, DefaultIndex: current})
		if err != nil || idx < 0 {
			return string(field.Type), err
		}
		return options[idx], nil
	case editor.AttrDefaultValue:
		current := ""
		if field.DefaultValue != nil {
			current = *field.DefaultValue
		}
		v, err := b.driver.Input(ctx, prompt.InputConfig{Message: message, Default: current})
		if err != nil || v == "" {
			return nil, err
		}
		return v, nil
	case editor.AttrRows:
		def := ""
		if field.Rows > 0 {
			def = strconv.Itoa(field.Rows)
		}
		return b.driver.Input(ctx, prompt.InputConfig{Message: message, Default: def, Validator: validRows})
	}
	return b.driver.Input(ctx, prompt.InputConfig{Message: message, Default: stringAttr(field, attr)})
}

func validRows(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("%q is not a row count", s)
	}
	return nil
}

func boolAttr(f model.Field, attr editor.Attribute) bool {
	switch attr {
	case editor.AttrRequired:
		return f.Required
	case editor.AttrHidden:
		return f.Hidden
	case editor.AttrDefaultChecked:
		return f.DefaultChecked
	}
	return false
}

func stringAttr(f model.Field, attr editor.Attribute) string {
	switch attr {
	case editor.AttrLabel:
		return f.Label
	case editor.AttrName:
		return f.Name
	case editor.AttrPlaceholder:
		return f.Placeholder
	}
	return ""
}

func (b *Builder) configureWebhook(ctx context.Context) error {
	current := b.session.Webhook()
	url, err := b.driver.Input(ctx, prompt.InputConfig{Message: b.msg("ui_webhook_url"), Default: current.WebhookURL})
	if err != nil {
		return err
	}
	user, err := b.driver.Input(ctx, prompt.InputConfig{Message: b.msg("ui_username"), Default: current.Username})
	if err != nil {
		return err
	}
	pass, err := b.driver.Password(ctx, prompt.InputConfig{Message: b.msg("ui_app_password"), Default: current.AppPassword})
	if err != nil {
		return err
	}
	return b.session.SetWebhook(webhook.Config{WebhookURL: url, Username: user, AppPassword: pass})
}

func (b *Builder) configureTarget(ctx context.Context) error {
	current := b.session.PublishTarget()
	base, err := b.driver.Input(ctx, prompt.InputConfig{Message: b.msg("ui_base_url"), Default: current.BaseURL})
	if err != nil {
		return err
	}
	user, err := b.driver.Input(ctx, prompt.InputConfig{Message: b.msg("ui_username"), Default: current.Username})
	if err != nil {
		return err
	}
	pass, err := b.driver.Password(ctx, prompt.InputConfig{Message: b.msg("ui_password"), Default: current.Password})
	if err != nil {
		return err
	}
	scopes := publish.Scopes()
	scopeIdx, err := b.driver.Select(ctx, prompt.SelectConfig{
		Message:      b.msg("ui_scope"),
		Options:      scopes,
		DefaultIndex: prompt.IndexOf(scopes, current.Scope),
	})
	if err != nil {
		return err
	}
	scope := publish.DefaultScope
	if scopeIdx >= 0 {
		scope = scopes[scopeIdx]
	}
	name, err := b.driver.Input(ctx, prompt.InputConfig{Message: b.msg("ui_form_name"), Default: current.FormName})
	if err != nil {
		return err
	}
	if err := b.session.SetPublishTarget(publish.Target{
		BaseURL:  base,
		Username: user,
		Password: pass,
		Scope:    scope,
		FormName: name,
	}); err != nil {
		return err
	}
	return b.info(ctx, b.msg("ui_path")+b.session.State().PublishPath)
}

func (b *Builder) test(ctx context.Context) error {
	result, err := b.session.TestWebhook(ctx)
	if err != nil && !errors.Is(err, webhook.ErrMissingURL) {
		return err
	}
	if result.OK {
		return b.info(ctx, b.msg("ui_webhook_ok"))
	}
	return b.info(ctx, b.msg("ui_failed")+result.Error)
}

func (b *Builder) publish(ctx context.Context) error {
	result, err := b.session.Publish(ctx)
	if err != nil && !errors.Is(err, publish.ErrMissingDAV) && !errors.Is(err, publish.ErrMissingPath) {
		return err
	}
	if result.OK {
		return b.info(ctx, b.msg("ui_uploaded")+result.Path)
	}
	return b.info(ctx, b.msg("ui_upload_failed")+result.Error)
}

func (b *Builder) download(ctx context.Context) error {
	name, body := b.session.Download()
	path, err := b.driver.Input(ctx, prompt.InputConfig{Message: b.msg("cli_output_path"), Default: name})
	if err != nil {
		return err
	}
	if err := b.writeFile(path, body, 0o644); err != nil {
		return err
	}
	return b.info(ctx, b.msg("cli_saved", map[string]any{"Path": path}))
}
