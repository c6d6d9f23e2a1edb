// Package cli is the interactive terminal front end: the guess prompt
// loop, difficulty menus, the "!" command set and table rendering. The
// game rules themselves live in core and game.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"bacgo/core"
	"bacgo/game"
)

const (
	programName   = "bacgo"
	version       = "1.0.0"
	commandPrefix = "!"
)

// UI runs one interactive play session on a reader/writer pair.
type UI struct {
	svc    *game.Service
	in     *bufio.Scanner
	out    io.Writer
	log    zerolog.Logger
	params core.NumberParams
	round  *core.Round
}

// New builds a UI reading player input from in and printing to out.
func New(svc *game.Service, in io.Reader, out io.Writer, log zerolog.Logger) *UI {
	return &UI{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
	}
}

// Run plays rounds until the player quits or input ends. Invalid guesses
// and invalid player names re-prompt; everything else ends the session.
func (u *UI) Run() error {
	fmt.Fprintln(u.out, startingHeader(programName+" v"+version))

	params, err := u.selectDifficulty(u.svc.Difficulties())
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	u.params = params

	for {
		fmt.Fprintln(u.out)
		err := u.playRound()

		var restart *restartError
		switch {
		case err == nil:
			// play another round at the same difficulty
		case errors.As(err, &restart):
			if restart.params != nil {
				u.params = *restart.params
			}
		case errors.Is(err, errQuit), errors.Is(err, errStop), errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

func (u *UI) playRound() error {
	round, err := u.svc.StartRound(u.params)
	if err != nil {
		return err
	}
	u.round = round
	defer func() { u.round = nil }()

	for !round.Finished() {
		guess, err := u.readGuess()
		if err != nil {
			return err
		}
		if guess == "" {
			continue
		}
		record, err := round.Guess(guess)
		if err != nil {
			if errors.Is(err, core.ErrInvalidGuess) {
				fmt.Fprintln(u.out, err)
				continue
			}
			return err
		}
		fmt.Fprintf(u.out, "bulls: %2d, cows: %2d\n", record.Bulls, record.Cows)
	}

	fmt.Fprintf(u.out, "\n *** You guessed in %d steps ***\n\n", round.Steps())

	score, err := round.TakeScore()
	if err != nil {
		return err
	}
	fit, err := u.svc.ScoreFits(score)
	if err != nil {
		return err
	}
	if !fit {
		return nil
	}

	player, err := u.readPlayerName()
	if err != nil {
		return err
	}
	if player == "" {
		return nil
	}

	table, err := u.svc.SaveScore(score, player)
	if err != nil {
		return err
	}
	u.printRanking(table)
	return nil
}

// readGuess prompts with the next step number and returns a raw guess,
// handling "!" command lines in between.
func (u *UI) readGuess() (string, error) {
	for {
		line, err := u.readLine(fmt.Sprintf("[%d] ", u.round.Steps()+1))
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(line, commandPrefix) {
			return line, nil
		}
		if err := u.dispatchCommand(strings.TrimPrefix(line, commandPrefix)); err != nil {
			return "", err
		}
	}
}

// readPlayerName prompts for a name until a valid, confirmed one is given.
// End of input returns an empty name, leaving the score unsaved.
func (u *UI) readPlayerName() (string, error) {
	for {
		name, err := u.readLine("Save score as: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", nil
			}
			return "", err
		}
		if err := core.ValidatePlayerName(name); err != nil {
			fmt.Fprintln(u.out, err)
			continue
		}

		ok, err := u.askOK(fmt.Sprintf("Confirm player: %q [Y/n] ", name), true)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", nil
			}
			return "", err
		}
		if !ok {
			continue
		}
		return name, nil
	}
}

// askOK reads a yes/no answer; an empty line picks the default.
func (u *UI) askOK(prompt string, def bool) (bool, error) {
	for {
		input, err := u.readLine(prompt)
		if err != nil {
			return false, err
		}
		input = strings.ToLower(input)
		switch {
		case input == "":
			return def, nil
		case strings.HasPrefix("yes", input):
			return true, nil
		case strings.HasPrefix("no", input):
			return false, nil
		}
	}
}

func (u *UI) readLine(prompt string) (string, error) {
	fmt.Fprint(u.out, prompt)
	if !u.in.Scan() {
		if err := u.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(u.in.Text()), nil
}

// selectDifficulty shows the catalog and reads a key until a valid one is
// entered.
func (u *UI) selectDifficulty(catalog []core.NumberParams) (core.NumberParams, error) {
	u.openWindow("Difficulty Selection")
	defer u.closeWindow("Difficulty Selection")

	u.printDifficulties(catalog)
	for {
		input, err := u.readLine("Enter key: ")
		if err != nil {
			return core.NumberParams{}, err
		}
		index, ok := parseIndex(input, len(catalog))
		if !ok {
			fmt.Fprintln(u.out, "Invalid key")
			continue
		}
		params := catalog[index]
		u.log.Debug().Str("label", params.Label).Msg("difficulty selected")
		return params, nil
	}
}

// selectAvailable is the same menu over difficulties that already have a
// saved ranking.
func (u *UI) selectAvailable(available []core.Difficulty) (core.Difficulty, error) {
	u.openWindow("Difficulty Selection")
	defer u.closeWindow("Difficulty Selection")

	u.printAvailable(available)
	for {
		input, err := u.readLine("Enter key: ")
		if err != nil {
			return core.Difficulty{}, err
		}
		index, ok := parseIndex(input, len(available))
		if !ok {
			fmt.Fprintln(u.out, "Invalid key")
			continue
		}
		return available[index], nil
	}
}

// parseIndex turns a 1-based menu key into a slice index.
func parseIndex(input string, length int) (int, bool) {
	var key int
	if _, err := fmt.Sscanf(input, "%d", &key); err != nil {
		return 0, false
	}
	if key < 1 || key > length {
		return 0, false
	}
	return key - 1, true
}

const windowWing = "====="

func (u *UI) openWindow(header string) {
	fmt.Fprintf(u.out, "\n%s %s %s\n", windowWing, header, windowWing)
}

func (u *UI) closeWindow(header string) {
	fmt.Fprintln(u.out, strings.Repeat("=", len(header)+2*(len(windowWing)+1)))
}

func startingHeader(title string) string {
	line := strings.Repeat("=", len(title)+2)
	return fmt.Sprintf("%s\n %s\n%s", line, title, line)
}
