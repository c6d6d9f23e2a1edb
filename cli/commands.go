package cli

import (
	"errors"
	"fmt"
	"strings"

	"bacgo/core"
)

// Control-flow errors raised by commands. The original game modeled these
// as events bubbling out of the prompt loop.
var (
	errQuit = errors.New("quit game")
	errStop = errors.New("stop playing")
)

// restartError restarts the round, optionally switching difficulty.
type restartError struct {
	params *core.NumberParams
}

func (e *restartError) Error() string { return "restart round" }

const gameHelp = `
# HELP

bacgo is a "Bulls and Cows" game implementation.

Rules are:
   * You have to guess a number whose digits do not repeat.
   * Enter your guess and the program will return the number of
     bulls (digits that are correct and in the correct position)
     and cows (correct digits in the wrong position).
   * Try to find the number in the fewest possible attempts.

Special commands:
    Type '!h commands' to show available commands.
`

type command struct {
	name      string
	shorthand string
	help      string
	maxArgs   int
	run       func(u *UI, args []string) error
}

// commands is filled in init to avoid an initialization cycle with
// runHelp, which walks the table.
var commands []command

func init() {
	commands = []command{
		{
			name:      "help",
			shorthand: "h",
			help: "h[elp] [{subject}]\n\n" +
				"    Show help about {subject}. Without {subject} show game help.",
			maxArgs: 1,
			run:     runHelp,
		},
		{
			name:      "quit",
			shorthand: "q",
			help:      "q[uit]\n\n    Quit the game.",
			run: func(u *UI, _ []string) error {
				return errQuit
			},
		},
		{
			name:      "stop",
			shorthand: "s",
			help:      "s[top]\n\n    Stop playing.",
			run: func(u *UI, _ []string) error {
				return errStop
			},
		},
		{
			name:      "restart",
			shorthand: "r",
			help: "r[estart] [-l | -i | {difficulty_key} | {difficulty_label}]\n\n" +
				"    Restart the round. With an argument change difficulty.\n\n" +
				"    -l  List difficulties.\n\n" +
				"    -i  Interactively choose a new difficulty.",
			maxArgs: 1,
			run:     runRestart,
		},
		{
			name:      "history",
			shorthand: "hi",
			help:      "hi[story]\n\n    Show the guess history of the current round.",
			run:       runHistory,
		},
		{
			name:      "ranking",
			shorthand: "ra",
			help: "ra[nking] [{difficulty_key} | -l]\n\n" +
				"    Show the ranking of a difficulty. Without an argument show\n" +
				"    a difficulty selection.\n\n" +
				"    -l  List difficulties with saved rankings.",
			maxArgs: 1,
			run:     runRanking,
		},
	}
}

// dispatchCommand parses and runs one "!"-prefixed command line.
func (u *UI) dispatchCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		fmt.Fprintf(u.out, "Type '%shelp commands' to get available commands\n", commandPrefix)
		return nil
	}

	name, args := fields[0], fields[1:]
	cmd, ok := findCommand(name)
	if !ok {
		fmt.Fprintf(u.out, "No command %q\n", name)
		return nil
	}
	if len(args) > cmd.maxArgs {
		fmt.Fprintf(u.out, "'%s' command takes at most %d arguments, %d given\n",
			cmd.name, cmd.maxArgs, len(args))
		return nil
	}
	return cmd.run(u, args)
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name || cmd.shorthand == name {
			return cmd, true
		}
	}
	return command{}, false
}

func runHelp(u *UI, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(u.out, gameHelp)
		return nil
	}

	switch arg := args[0]; arg {
	case "commands":
		for _, cmd := range commands {
			fmt.Fprintf(u.out, "%s\n\n", cmd.help)
		}
	default:
		cmd, ok := findCommand(arg)
		if !ok {
			fmt.Fprintf(u.out, "No command %q\n", arg)
			return nil
		}
		fmt.Fprintln(u.out, cmd.help)
	}
	return nil
}

func runRestart(u *UI, args []string) error {
	if len(args) == 0 {
		return &restartError{}
	}

	catalog := u.svc.Difficulties()
	switch arg := args[0]; arg {
	case "-l":
		u.printDifficulties(catalog)
		return nil
	case "-i":
		params, err := u.selectDifficulty(catalog)
		if err != nil {
			// selection abandoned, keep playing the current round
			return nil
		}
		return &restartError{params: &params}
	default:
		if index, ok := parseIndex(arg, len(catalog)); ok {
			return &restartError{params: &catalog[index]}
		}
		for i := range catalog {
			if catalog[i].Label == arg {
				return &restartError{params: &catalog[i]}
			}
		}
		fmt.Fprintf(u.out, "No %q difficulty available\n", arg)
		return nil
	}
}

func runHistory(u *UI, _ []string) error {
	if u.round == nil || u.round.Steps() == 0 {
		fmt.Fprintln(u.out, "History is empty")
		return nil
	}
	u.printHistory(u.round.History())
	return nil
}

func runRanking(u *UI, args []string) error {
	available, err := u.svc.AvailableDifficulties()
	if err != nil {
		return err
	}
	if len(available) == 0 {
		fmt.Fprint(u.out, "\nEmpty rankings\n\n")
		return nil
	}

	var difficulty core.Difficulty
	switch {
	case len(args) == 1 && args[0] == "-l":
		u.printAvailable(available)
		return nil
	case len(args) == 1:
		index, ok := parseIndex(args[0], len(available))
		if !ok {
			fmt.Fprintf(u.out, "Invalid key %q\n", args[0])
			return nil
		}
		difficulty = available[index]
	default:
		difficulty, err = u.selectAvailable(available)
		if err != nil {
			return nil
		}
	}

	table, err := u.svc.Ranking(difficulty)
	if err != nil {
		return err
	}
	u.printRanking(table)
	return nil
}
