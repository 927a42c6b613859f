package prompt

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Script is a Driver that replays canned answers in order. Select answers
// may be an int index or the option text. Once the answers run out every
// prompt returns ErrAborted.
type Script struct {
	mu      sync.Mutex
	answers []any
	asked   []string
	info    []string
}

func NewScript(answers ...any) *Script {
	return &Script{answers: answers}
}

// Asked returns the prompt messages seen so far.
func (s *Script) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}

// Output returns everything written through Info.
func (s *Script) Output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.info, "\n")
}

func (s *Script) next(ctx context.Context, message string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asked = append(s.asked, message)
	if len(s.answers) == 0 {
		return nil, ErrAborted
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

func (s *Script) text(ctx context.Context, message, def string, validate func(string) error) (string, error) {
	answer, err := s.next(ctx, message)
	if err != nil {
		return "", err
	}
	str, ok := answer.(string)
	if !ok {
		return "", fmt.Errorf("prompt: %q expects a string answer, got %T", message, answer)
	}
	if str == "" {
		str = def
	}
	if validate != nil {
		if err := validate(str); err != nil {
			return "", err
		}
	}
	return str, nil
}

func (s *Script) Input(ctx context.Context, cfg InputConfig) (string, error) {
	return s.text(ctx, cfg.Message, cfg.Default, cfg.Validator)
}

func (s *Script) Password(ctx context.Context, cfg InputConfig) (string, error) {
	return s.text(ctx, cfg.Message, cfg.Default, cfg.Validator)
}

func (s *Script) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	return s.text(ctx, cfg.Message, cfg.Default, nil)
}

func (s *Script) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	answer, err := s.next(ctx, cfg.Message)
	if err != nil {
		return false, err
	}
	b, ok := answer.(bool)
	if !ok {
		return false, fmt.Errorf("prompt: %q expects a bool answer, got %T", cfg.Message, answer)
	}
	return b, nil
}

func (s *Script) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	answer, err := s.next(ctx, cfg.Message)
	if err != nil {
		return 0, err
	}
	switch v := answer.(type) {
	case int:
		if v < 0 || v >= len(cfg.Options) {
			return 0, fmt.Errorf("prompt: %q has no option %d", cfg.Message, v)
		}
		return v, nil
	case string:
		idx := IndexOf(cfg.Options, v)
		if idx < 0 {
			return 0, fmt.Errorf("prompt: %q has no option %q", cfg.Message, v)
		}
		return idx, nil
	}
	return 0, fmt.Errorf("prompt: %q expects an int or string answer, got %T", cfg.Message, answer)
}

func (s *Script) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.info = append(s.info, msg)
	return nil
}
