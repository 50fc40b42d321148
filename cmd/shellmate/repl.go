package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"shellmate/internal/domain"
	"shellmate/internal/usecase/translate"
)

const replSessionKey = "cli"

// runREPL drives the interactive terminal loop on stdin/stdout.
func runREPL() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rt, err := build(ctx, parseFlags())
	if err != nil {
		return err
	}
	defer rt.close()

	sess, _ := rt.sessions.GetOrCreate(replSessionKey)
	if rt.store != nil {
		if lines, err := rt.store.Tail(ctx, replSessionKey, rt.cfg.Shell.MaxHistory); err == nil {
			sess.SeedHistory(lines)
		} else {
			rt.log.Warn("load history", "error", err)
		}
		// Compact the stored history to the final ring on the way out.
		defer func() {
			if err := rt.store.Replace(context.Background(), replSessionKey, sess.HistoryTail(rt.cfg.Shell.MaxHistory)); err != nil {
				rt.log.Warn("flush history", "error", err)
			}
		}()
	}

	useAI := rt.cfg.AI.Enabled

	if useAI {
		fmt.Println("AI-Powered Terminal")
		fmt.Println("Type natural language commands or traditional terminal commands")
		fmt.Println("Type 'help' for examples, 'toggle ai' to switch modes, 'exit' to quit")
	} else {
		fmt.Println("shellmate - Type 'help' for available commands")
		fmt.Println("Use Ctrl+C to interrupt, 'exit' or 'quit' to exit")
	}
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		prompt := sess.Prompt()
		if useAI {
			prompt = "AI " + prompt
		}
		fmt.Print(prompt)

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "toggle ai":
			useAI = !useAI
			if useAI {
				fmt.Println("AI interpretation enabled")
			} else {
				fmt.Println("AI interpretation disabled")
			}
			continue
		case "ai help":
			fmt.Print(translate.HelpText, "\n")
			continue
		}

		line := input
		if useAI {
			outcome := rt.translator.Interpret(ctx, input)
			line = outcome.CommandLine
			if outcome.Explanation != domain.ExplainPassthrough {
				fmt.Printf("%s\n", outcome.Explanation)
			}
		}

		result := rt.engine.Execute(ctx, sess, line)

		if result.IsExit() {
			return nil
		}
		if result.Output != "" {
			fmt.Println(result.Output)
		}

		if rt.store != nil {
			if err := rt.store.Append(ctx, replSessionKey, line); err != nil {
				rt.log.Warn("persist history", "error", err)
			}
		}
	}
}
