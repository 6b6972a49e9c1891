package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// terminal implementa Dialog y Confirmer de viewmodel sobre stdin/stdout.
type terminal struct {
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	assumeYes bool

	reader *bufio.Reader
}

func (t *terminal) Success(msg string) {
	if msg != "" {
		fmt.Fprintln(t.out, "Success:", msg)
	}
}

func (t *terminal) Error(msg string) {
	fmt.Fprintln(t.errOut, "Error:", msg)
}

func (t *terminal) Confirm(ctx context.Context, prompt string) bool {
	if t.assumeYes {
		return true
	}
	if ctx.Err() != nil {
		return false
	}
	if t.reader == nil {
		t.reader = bufio.NewReader(t.in)
	}

	fmt.Fprintf(t.out, "Konfirmasi: %s [y/N] ", prompt)
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "ya", "yes":
		return true
	default:
		return false
	}
}

type navigator struct {
	ctx    context.Context
	routes map[string]func(context.Context) error
}

// Navigate muestra la página de destino; si falla, su propio diálogo ya avisó.
func (n *navigator) Navigate(path string) {
	if fn, ok := n.routes[path]; ok {
		_ = fn(n.ctx)
	}
}
