package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/comalice/groupx/internal/production"
)

var (
	colorAccent = lipgloss.Color("#20B9B4")
	colorMuted  = lipgloss.Color("#6C7A89")
	colorError  = lipgloss.Color("#E74C3C")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	keyStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	markStyle  = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
)

var errDotUnsupported = errors.New("dot output is only available for lattice and solvable")

// printer writes command output, styled only when w is a terminal.
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		p.styled = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return p
}

func (p *printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) title(text string) {
	fmt.Fprintln(p.w, p.render(titleStyle, text))
}

func (p *printer) field(key string, value any) {
	fmt.Fprintf(p.w, "%s %v\n", p.render(keyStyle, key+":"), value)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) mark(text string) string { return p.render(markStyle, text) }

// structured writes v as JSON or YAML and reports whether it did.
func (a *app) structured(w io.Writer, v any) (bool, error) {
	var (
		data []byte
		err  error
	)
	switch a.format {
	case "json":
		data, err = production.ExportJSON(v)
	case "yaml":
		data, err = production.ExportYAML(v)
	case "dot":
		return true, errDotUnsupported
	default:
		return false, nil
	}
	if err != nil {
		return true, err
	}
	_, err = w.Write(data)
	if err == nil && a.format == "json" {
		_, err = fmt.Fprintln(w)
	}
	return true, err
}
