// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/shauraya-mohan/chatbot/internal/config"
	"github.com/shauraya-mohan/chatbot/internal/export"
	"github.com/shauraya-mohan/chatbot/internal/session"
	"github.com/shauraya-mohan/chatbot/internal/util"
)

// newChatCommand creates the line chat command.
//
// Interactive Commands (during chat):
//
//	/help, /h        Show available commands
//	/actions, /a     List quick actions
//	/1 .. /9         Send a quick action
//	/history         Show the conversation so far
//	/status, /s      Show reference data and usage
//	/export [FMT] [DIR]  Save the transcript (markdown, html or json)
//	/quit, /q        Exit chat
//	Ctrl+C           Show the rest of the current reply; at the prompt, exit
//	Ctrl+D           Exit chat
func newChatCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant line by line",
		Long: `Start a line-oriented chat with input history.

Type /help during the chat for the list of commands. Input that is not a
terminal is read one message per line, which makes scripted use possible:

  echo "Which controller has the most zones?" | chatbot chat`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd.Context(), opts, replOptions{in: cmd.InOrStdin(), out: cmd.OutOrStdout()})
		},
	}
}

// =============================================================================
// INPUT
// =============================================================================

// lineReader reads one line of input. *liner.State satisfies it.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// historyEditor is a liner editor that keeps history in the config dir.
type historyEditor struct {
	*liner.State
	historyFile string
}

func newHistoryEditor() *historyEditor {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	e := &historyEditor{State: state, historyFile: filepath.Join(dir, "chat_history")}
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.ReadHistory(f)
		f.Close()
	}
	return e
}

// Close saves history with owner-only permissions and restores the terminal.
func (e *historyEditor) Close() error {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = e.WriteHistory(f)
			f.Close()
		}
	}
	return e.State.Close()
}

// scanReader reads piped input, one message per line.
type scanReader struct {
	sc *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &scanReader{sc: sc}
}

func (s *scanReader) Prompt(string) (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanReader) AppendHistory(string) {}

// =============================================================================
// REPL
// =============================================================================

type replOptions struct {
	in  io.Reader
	out io.Writer
	// reader, completer and width replace the terminal defaults in tests.
	reader    lineReader
	completer session.Completer
	width     int
	noWait    bool
}

type repl struct {
	app         *app
	sink        *lineSink
	out         *termenv.Output
	reader      lineReader
	interactive bool
}

func runREPL(ctx context.Context, opts *rootOptions, ro replOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	interactive := ro.reader == nil && IsTTY()
	out := termenv.NewOutput(ro.out, termenv.WithProfile(colorProfile(cfg.UI.NoColor)))
	width := ro.width
	if width <= 0 {
		width = TerminalWidth()
	}
	sink := newLineSink(out, width, interactive)
	sink.timestamps = cfg.UI.ShowTimestamps

	a, err := newApp(ctx, cfg, appOptions{sink: sink, completer: ro.completer})
	if err != nil {
		return err
	}
	defer a.Close()
	sink.setApology(a.session.Messages().Apology)

	reader := ro.reader
	if reader == nil {
		if interactive {
			editor := newHistoryEditor()
			defer editor.Close()
			reader = editor
		} else {
			reader = newScanReader(ro.in)
		}
	}

	if !ro.noWait && !interactive {
		// Scripted input is read all at once; give the reference data a
		// chance to load before the first question.
		select {
		case <-a.loaded:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	r := &repl{app: a, sink: sink, out: out, reader: reader, interactive: interactive}
	return r.loop(ctx)
}

func (r *repl) loop(ctx context.Context) error {
	r.app.session.Start()
	if r.interactive {
		r.println(r.faint("Type /help for commands, /quit to exit."))
	}

	prompt := ""
	if r.interactive {
		prompt = "You: "
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		input, err := r.reader.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				if r.interactive {
					r.println("")
					r.println(r.faint("Goodbye."))
				}
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.reader.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if quit := r.command(ctx, input); quit {
				return nil
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		r.send(ctx, func(ctx context.Context) (session.Reply, error) {
			return r.app.session.Submit(ctx, input)
		})
	}
}

// send runs one submission and waits for its reveal. Ctrl+C while waiting
// shows the rest of the reply at once.
func (r *repl) send(ctx context.Context, fn func(context.Context) (session.Reply, error)) {
	turnCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	reply, err := fn(turnCtx)
	if err != nil {
		r.println(r.warn(err.Error()))
		return
	}
	if reply.Handle == nil {
		return
	}
	if err := reply.Handle.Wait(turnCtx); err != nil {
		reply.Handle.Skip()
		<-reply.Handle.Done()
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// command handles a slash command and reports whether to quit.
func (r *repl) command(ctx context.Context, input string) bool {
	fields := strings.Fields(strings.TrimPrefix(input, "/"))
	if len(fields) == 0 {
		r.printHelp()
		return false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	if n, err := strconv.Atoi(name); err == nil {
		r.quickAction(ctx, n-1)
		return false
	}

	switch name {
	case "help", "h", "?":
		r.printHelp()
	case "actions", "a":
		r.printActions()
	case "history":
		r.printHistory()
	case "status", "s":
		r.printStatus()
	case "export":
		r.export(args)
	case "quit", "q", "exit":
		return true
	default:
		r.println(r.warn(fmt.Sprintf("Unknown command /%s. Type /help for commands.", name)))
	}
	return false
}

func (r *repl) quickAction(ctx context.Context, i int) {
	actions := r.app.session.QuickActions()
	if i < 0 || i >= len(actions) {
		r.println(r.warn(fmt.Sprintf("No quick action %d. Type /actions to list them.", i+1)))
		return
	}
	r.println(r.faint("You: " + actions[i].Message))
	r.send(ctx, func(ctx context.Context) (session.Reply, error) {
		return r.app.session.SubmitQuickAction(ctx, i)
	})
}

func (r *repl) printHelp() {
	r.println("Commands:")
	for _, line := range []string{
		"/help, /h        Show this help",
		"/actions, /a     List quick actions",
		"/1 .. /9         Send a quick action",
		"/history         Show the conversation so far",
		"/status, /s      Show reference data and usage",
		"/export [FMT] [DIR]  Save the transcript (markdown, html, json)",
		"/quit, /q        Exit",
	} {
		r.println("  " + line)
	}
}

func (r *repl) printActions() {
	for i, a := range r.app.session.QuickActions() {
		r.println(fmt.Sprintf("  /%d  %s", i+1, a.Label))
	}
}

func (r *repl) printHistory() {
	width := max(r.sink.width-12, 20)
	for _, msg := range r.app.session.History() {
		first, _, _ := strings.Cut(msg.Content, "\n")
		r.println(fmt.Sprintf("  %s %-9s %s", msg.FormattedTime(), msg.Role.DisplayName(), util.TruncateWidth(first, width)))
	}
}

func (r *repl) printStatus() {
	a := r.app
	ref := "loading"
	if d := a.store.Get(); d != nil {
		ref = fmt.Sprintf("%d products, loaded %s", len(d.Catalog.Products), d.LoadedAt.Format("15:04:05"))
	}
	model := "(custom)"
	if a.client != nil {
		model = a.client.Model()
	}
	sum := a.usage.Summary()
	r.println(fmt.Sprintf("  Reference: %s", ref))
	r.println(fmt.Sprintf("  Model:     %s", model))
	r.println(fmt.Sprintf("  Requests:  %d", sum.Requests))
	r.println(fmt.Sprintf("  Tokens:    %d in, %d out", sum.Tokens.Input, sum.Tokens.Output))
	r.println(fmt.Sprintf("  History:   ~%d tokens", a.session.Conversation().EstimateTokens()))
}

func (r *repl) export(args []string) {
	format, dir := "markdown", "."
	if len(args) > 0 {
		format = args[0]
	}
	if len(args) > 1 {
		dir = args[1]
	}

	exp, err := export.ForFormat(format, export.DefaultOptions())
	if err != nil {
		r.println(r.warn(err.Error()))
		return
	}
	t := export.Transcript{
		Messages: r.app.session.History(),
		Tokens:   r.app.usage.Summary().Tokens.Total(),
	}
	if r.app.client != nil {
		t.Model = r.app.client.Model()
	}
	path, err := export.WriteFile(t, exp, dir)
	if err != nil {
		r.println(r.warn(err.Error()))
		return
	}
	r.println(r.faint("Saved " + path))
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func (r *repl) println(s string) {
	r.out.WriteString(s + "\n")
}

func (r *repl) faint(s string) string {
	return r.out.String(s).Faint().String()
}

func (r *repl) warn(s string) string {
	return r.out.String(s).Foreground(r.out.Color(apologyColor)).String()
}
