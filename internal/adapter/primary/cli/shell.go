package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"duty-validator/internal/adapter/secondary/worksheet"
	"duty-validator/internal/domain"
	"duty-validator/internal/logging"
)

func newShellCmd() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell that edits a worksheet and runs subcommands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractiveShell(prompt)
		},
	}
	cmd.Flags().StringVar(&prompt, "prompt", "duty> ", "shell prompt")
	return cmd
}

// session is the worksheet edited in one shell run.
type session struct {
	ws  domain.Worksheet
	ids domain.IDGenerator
}

func newSession(ids domain.IDGenerator) *session {
	return &session{ws: domain.NewWorksheet(), ids: ids}
}

func runInteractiveShell(prompt string) error {
	historyFile := filepath.Join(os.TempDir(), "duty-validator-shell.history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	sess := newSession(worksheet.UUIDGenerator{})
	sessionVerbosity := verbosity
	fmt.Println("Interactive shell. Type 'help' for usage, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			fmt.Println()
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "exit", "quit":
			fmt.Println("Bye!")
			return nil
		case "help":
			printShellHelp(os.Stdout)
			continue
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			continue
		}
		if len(tokens) == 0 {
			continue
		}
		switch tokens[0] {
		case "log":
			if err := handleShellLog(tokens[1:], &sessionVerbosity); err != nil {
				fmt.Printf("log: %v\n", err)
			}
			continue
		case "shell":
			fmt.Println("Already inside the shell. Enter another command or 'exit'.")
			continue
		}

		verbosity = sessionVerbosity
		handled, err := sess.handle(tokens, os.Stdout)
		if !handled {
			err = executeArgs(tokens)
		}
		if err != nil {
			fmt.Printf("%s: %v\n", tokens[0], err)
		}
		sessionVerbosity = verbosity
	}
}

// handle runs a worksheet verb. It reports false when tokens are not a worksheet verb.
func (s *session) handle(tokens []string, out io.Writer) (bool, error) {
	switch tokens[0] {
	case "duty":
		return true, s.setDuty(tokens[1:], out)
	case "break":
		return true, s.editBreak(tokens[1:], out)
	case "load":
		if len(tokens) != 2 {
			return true, errors.New("usage: load <file.yaml>")
		}
		ws, err := worksheet.NewLoader(s.ids).Load(tokens[1])
		if err != nil {
			return true, err
		}
		s.ws = ws
		printWorksheet(out, s.ws)
		return true, nil
	case "show":
		printWorksheet(out, s.ws)
		return true, nil
	case "reset":
		s.ws = domain.NewWorksheet()
		printWorksheet(out, s.ws)
		return true, nil
	case "check":
		return true, s.check(tokens[1:], out)
	default:
		return false, nil
	}
}

func (s *session) setDuty(args []string, out io.Writer) error {
	start, end, err := parseSpanArgs(args)
	if err != nil {
		return err
	}
	s.ws = s.ws.WithDuty(domain.Duty{Start: start, End: end})
	printWorksheet(out, s.ws)
	return nil
}

func (s *session) editBreak(args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: break add|rm|set ...")
	}
	var err error
	switch args[0] {
	case "add":
		b := domain.DefaultBreak(s.ids.NewID())
		if len(args) > 1 {
			if b.Start, b.End, err = parseSpanArgs(args[1:]); err != nil {
				return err
			}
		}
		if s.ws, err = s.ws.AddBreak(b); err != nil {
			return err
		}
	case "rm", "remove":
		if len(args) != 2 {
			return errors.New("usage: break rm <id|number>")
		}
		id, err := s.ws.BreakID(args[1])
		if err != nil {
			return err
		}
		if s.ws, err = s.ws.RemoveBreak(id); err != nil {
			return err
		}
	case "set":
		if len(args) < 3 {
			return errors.New("usage: break set <id|number> <start> <end>")
		}
		id, err := s.ws.BreakID(args[1])
		if err != nil {
			return err
		}
		start, end, err := parseSpanArgs(args[2:])
		if err != nil {
			return err
		}
		if s.ws, err = s.ws.UpdateBreak(id, start, end); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown break action %q", args[0])
	}
	printWorksheet(out, s.ws)
	return nil
}

func (s *session) check(args []string, out io.Writer) error {
	fs := pflag.NewFlagSet("check", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var policy, format string
	fs.StringVar(&policy, "policy", "", "legal policy override: stub|break-rule")
	fs.StringVar(&format, "format", formatTable, "output format: table|json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	uc, err := newUseCase()
	if err != nil {
		return err
	}
	return runValidation(out, uc, s.ws, policy, format)
}

// parseSpanArgs accepts either "START END" or a single "START-END".
func parseSpanArgs(args []string) (domain.ClockTime, domain.ClockTime, error) {
	switch len(args) {
	case 1:
		return domain.ParseClockRange(args[0])
	case 2:
		start, err := domain.ParseClockTime(args[0])
		if err != nil {
			return domain.ClockTime{}, domain.ClockTime{}, err
		}
		end, err := domain.ParseClockTime(args[1])
		if err != nil {
			return domain.ClockTime{}, domain.ClockTime{}, err
		}
		return start, end, nil
	default:
		return domain.ClockTime{}, domain.ClockTime{}, errors.New("want <start> <end> or <start>-<end>")
	}
}

func printWorksheet(out io.Writer, ws domain.Worksheet) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "ID", "Start", "End"})
	t.AppendRow(table.Row{"Duty", "", ws.Duty.Start.String(), ws.Duty.End.String()})
	for i, b := range ws.Breaks {
		t.AppendRow(table.Row{fmt.Sprintf("Break %d", i+1), b.ID, b.Start.String(), b.End.String()})
	}
	t.Render()
}

func executeArgs(args []string) error {
	if len(args) == 0 {
		return nil
	}
	// NewRootCmd rebinds the flag globals to their defaults; the session's
	// values win unless the line sets its own flags. A per-line --config does
	// not outlive the line.
	savedCfg, savedVerbosity := cfgPath, verbosity
	root := NewRootCmd()
	cfgPath, verbosity = savedCfg, savedVerbosity
	root.SetArgs(args)
	err := root.Execute()
	cfgPath = savedCfg
	return err
}

func handleShellLog(args []string, sessionVerbosity *int) error {
	fs := pflag.NewFlagSet("log", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var vcount int
	var level string
	var show bool
	fs.CountVarP(&vcount, "verbose", "v", "Increase verbosity (-v... up to 4)")
	fs.StringVar(&level, "level", "", "level (error|warn|info|debug|trace)")
	fs.BoolVarP(&show, "show", "s", false, "show current level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case show && vcount == 0 && level == "":
		fmt.Printf("log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	case level != "":
		_, count, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		*sessionVerbosity = count
	case vcount > 0:
		*sessionVerbosity = vcount
	default:
		fmt.Printf("log level: %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
		return nil
	}

	verbosity = *sessionVerbosity
	logging.SetVerbosity(*sessionVerbosity)
	fmt.Printf("log level set to %s (-v x%d)\n", logging.LevelName(), logging.Verbosity())
	return nil
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, `Worksheet commands:
  duty 22:00 06:00+1          # set the duty window ("+1" = next day)
  break add [12:00 12:30]     # add a break (default 12:00-13:00)
  break set 1 12:15 12:45     # change break 1 (number or id)
  break rm 1                  # remove break 1 (number or id)
  load sheet.yaml             # replace the worksheet from a YAML file
  show                        # print the worksheet
  reset                       # back to the default 08:00-16:00 duty
  check [--policy stub]       # validate the worksheet
Other commands:
  validate --duty 08:00-16:00 --break 12:00-12:30
  config get | config set --policy stub
  log -vv | log --level debug | log --show
  exit / quit`)
}
