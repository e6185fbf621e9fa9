package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/dirsync/internal/stats"
)

// Catppuccin Mocha accents.
var (
	colorGreen  = lipgloss.Color("#a6e3a1")
	colorRed    = lipgloss.Color("#f38ba8")
	colorMauve  = lipgloss.Color("#cba6f7")
	colorMuted  = lipgloss.Color("#5a6278")
	colorBright = lipgloss.Color("#cdd6f4")
)

var (
	styleRule   = lipgloss.NewStyle().Foreground(colorMuted)
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorBright)
	stylePrompt = lipgloss.NewStyle().Bold(true).Foreground(colorMauve)
	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed = lipgloss.NewStyle().Foreground(colorRed)
)

// maxRuleWidth caps the banner rule on very wide terminals.
const maxRuleWidth = 114

// Console writes the operator-facing banner, prompt and exit lines. Colors
// are only used when styled is set, i.e. the writer is a terminal.
type Console struct {
	w      io.Writer
	width  int
	styled bool
}

// NewConsole returns a Console writing to w. width is the rule width in
// columns.
func NewConsole(w io.Writer, styled bool, width int) *Console {
	if width <= 0 || width > maxRuleWidth {
		width = maxRuleWidth
	}
	return &Console{w: w, styled: styled, width: width}
}

func (c *Console) render(s lipgloss.Style, text string) string {
	if !c.styled {
		return text
	}
	return s.Render(text)
}

func (c *Console) rule(ch string) string {
	return c.render(styleRule, strings.Repeat(ch, c.width))
}

// Banner announces what is being synced.
func (c *Console) Banner(src, dst, logPath string, interval time.Duration) {
	fmt.Fprintln(c.w, c.rule("-"))
	fmt.Fprintln(c.w, c.render(styleHeader, fmt.Sprintf(
		"Syncing %s to %s every %s seconds. Logging to %s",
		src, dst, strconv.FormatInt(int64(interval/time.Second), 10), logPath,
	)))
	fmt.Fprintln(c.w, c.rule("-"))
}

// Prompt tells an interactive operator how to stop the program.
func (c *Console) Prompt() {
	fmt.Fprintln(c.w, c.render(stylePrompt, "PRESS ENTER TO EXIT..."))
}

// Exit prints the run summary and the closing line.
func (c *Console) Exit(snap stats.Snapshot) {
	style := styleOK
	if snap.TicksFailed > 0 {
		style = styleFailed
	}
	fmt.Fprintln(c.w, c.render(style, Summary(snap)))
	fmt.Fprintln(c.w, "PROGRAM EXITING.")
	fmt.Fprintln(c.w, c.rule("#"))
}
