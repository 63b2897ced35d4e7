// Command rubricshell is an interactive curve selector: each command changes
// the selection and redraws the rubric chart into a PNG file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/iafilius/RubricViewer/src/config"
	"github.com/iafilius/RubricViewer/src/logging"
	"github.com/iafilius/RubricViewer/src/traces"
)

func main() {
	var (
		configFlag  string
		outFlag     string
		historyFlag string
	)
	flag.StringVar(&configFlag, "config", config.DefaultConfigPath(), "Path to rubric.yaml")
	flag.StringVar(&outFlag, "out", "rubric.png", "PNG file redrawn after every change")
	flag.StringVar(&historyFlag, "history", "", "Readline history file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logging.SetLogLevel(cfg.LogLevel)
	reg, err := traces.NewRegistry(cfg.Params())
	if err != nil {
		fmt.Fprintf(os.Stderr, "curves: %v\n", err)
		os.Exit(2)
	}

	sh := NewShell(reg, os.Stdout, outFlag, cfg.Chart.Width, cfg.Chart.Height)
	sel := cfg.InitialSelection()
	for _, id := range sel.IDs {
		sh.ids.Add(id)
	}
	sh.legacy = sel.Legacy
	if err := sh.render(); err != nil {
		log.Errorf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		err = runInteractive(ctx, sh, reg, historyFlag)
	} else {
		err = runScript(ctx, sh, os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// runInteractive is the readline loop used on a terminal.
func runInteractive(ctx context.Context, sh *Shell, reg *traces.Registry, history string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mrubric>\033[0m ",
		HistoryFile:     history,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    newCompleter(reg),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(sh.out, "Drawing into %s. Curves: %s\n", sh.pngPath, strings.Join(idStrings(reg.Order()), " "))
	fmt.Fprintln(sh.out, "Type help for commands.")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := sh.Exec(strings.TrimSpace(line)); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		}
	}
}

// runScript executes commands from a non-terminal reader without prompting;
// errors are reported and the script continues.
func runScript(ctx context.Context, sh *Shell, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := sh.Exec(line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		}
	}
	return sc.Err()
}
