// Package repl implements the interactive health assistant shell: a
// readline loop over a multi-turn AI chat seeded with the user's current
// health context.
package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/healthsense/healthsense/internal/ai"
	"github.com/healthsense/healthsense/internal/app"
)

// Config holds REPL dependencies
type Config struct {
	Controller *app.Controller
	AI         *ai.Client
}

// REPL is the interactive chat shell
type REPL struct {
	controller *app.Controller
	session    *ai.ChatSession
	rl         *readline.Instance
	ctx        context.Context
}

// New creates a REPL instance and opens the chat session
func New(cfg *Config) (*REPL, error) {
	if cfg == nil || cfg.Controller == nil {
		return nil, fmt.Errorf("controller is required")
	}
	if cfg.AI == nil {
		return nil, fmt.Errorf("ai client is required")
	}

	userName := cfg.Controller.Profile().Name
	session := cfg.AI.NewChatSession(userName, cfg.Controller.HealthContext())

	return &REPL{
		controller: cfg.Controller,
		session:    session,
	}, nil
}

// Run starts the REPL loop
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	prompt := cyan("you> ")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       "",
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch line {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return nil
		case "help":
			r.printHelp()
			continue
		}

		if err := r.send(line); err != nil {
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

// send streams one assistant reply to the terminal
func (r *REPL) send(text string) error {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s ", green("assistant>"))

	reply, err := r.session.Send(r.ctx, text, func(delta string) {
		fmt.Print(delta)
	})
	if err != nil {
		// The session already substituted a fallback reply; show it
		fmt.Println(reply)
		return nil
	}
	fmt.Println()
	return nil
}

func (r *REPL) printWelcome() {
	bold := color.New(color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("\n%s\n", bold("HealthSense Assistant"))
	fmt.Printf("%s\n\n", gray("Ask about your vitals and trends. Type 'exit' to leave, 'help' for commands."))

	green := color.New(color.FgGreen).SprintFunc()
	for _, msg := range r.session.Messages() {
		fmt.Printf("%s %s\n", green("assistant>"), msg.Text)
	}
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  help   Show this help")
	fmt.Println("  exit   Leave the assistant (Ctrl+D also works)")
	fmt.Println()
	fmt.Println("Anything else is sent to the assistant as a question.")
}
