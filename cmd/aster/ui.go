package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"aster/internal/driver"
	"aster/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI: в авто-режиме прогресс нужен только для нескольких манифестов
func shouldUseTUI(mode uiMode, manifests int) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return manifests > 1 && isTerminal(os.Stderr)
	}
}

type genOutcome struct {
	results []driver.Result
	err     error
}

// runGenWithUI runs Generate while a Bubble Tea program renders progress to out.
func runGenWithUI(ctx context.Context, out io.Writer, paths []string, opts driver.Options) ([]driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan genOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.Generate(ctx, paths, opts)
		outcomeCh <- genOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("aster gen", paths, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы генерация не зависла на канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, fmt.Errorf("progress ui: %w", uiErr)
	}
	return outcome.results, outcome.err
}
