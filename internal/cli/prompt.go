package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rohmanhakim/nps-scraper/internal/directory"
	"github.com/rohmanhakim/nps-scraper/internal/explorer"
	"github.com/rohmanhakim/nps-scraper/internal/park"
	"github.com/rohmanhakim/nps-scraper/internal/places"
	"github.com/rohmanhakim/nps-scraper/pkg/failure"
)

const (
	statePrompt     = "Enter a state name (e.g. Michigan, michigan) or \"exit\"\n: "
	selectionPrompt = "Choose the number for detail search or \"exit\" or \"back\"\n: "
	unknownStateMsg = "[Error] Enter proper state name"
	invalidInputMsg = "[Error] Invalid input"
	suggestionCount = 3
)

// Browser is what the prompt needs from a session.
type Browser interface {
	Directory(ctx context.Context) (directory.StateDirectory, failure.ClassifiedError)
	ParksForState(ctx context.Context, state string) ([]park.Record, failure.ClassifiedError)
	Nearby(ctx context.Context, record park.Record) ([]places.Place, failure.ClassifiedError)
	SuggestStates(input string, n int) []string
}

// errExit ends the prompt loop without an error.
var errExit = errors.New("exit")

// RunPrompt runs the interactive loop until "exit", end of input or a fatal
// error. Recoverable errors are reported and the user is prompted again.
func RunPrompt(ctx context.Context, in io.Reader, out io.Writer, b Browser) error {
	if _, err := b.Directory(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, statePrompt)
		input, ok := readLine(scanner)
		if !ok || input == "exit" {
			return scanner.Err()
		}

		err := browseState(ctx, scanner, out, b, input)
		if errors.Is(err, errExit) {
			return scanner.Err()
		}
		if err != nil {
			return err
		}
	}
}

// browseState lists the parks of one state and serves detail selections
// until the user goes back. It returns errExit when the session should end.
func browseState(ctx context.Context, scanner *bufio.Scanner, out io.Writer, b Browser, input string) error {
	records, err := b.ParksForState(ctx, input)
	if err != nil {
		var explorerErr *explorer.ExplorerError
		if errors.As(err, &explorerErr) && explorerErr.Cause == explorer.ErrCauseUnknownState {
			fmt.Fprintln(out, unknownStateMsg)
			if hint := suggestionHint(b.SuggestStates(input, suggestionCount)); hint != "" {
				fmt.Fprintln(out, hint)
			}
			return nil
		}
		if failure.IsRecoverable(err) {
			reportInvalidInput(out)
			return nil
		}
		return err
	}

	writeParkList(out, input, records)

	for {
		fmt.Fprint(out, selectionPrompt)
		selection, ok := readLine(scanner)
		if !ok {
			return errExit
		}
		switch selection {
		case "back":
			return nil
		case "exit":
			return errExit
		}

		record, selErr := selectRecord(records, selection)
		if selErr != nil {
			reportInvalidInput(out)
			continue
		}

		nearby, err := b.Nearby(ctx, record)
		if err != nil {
			if failure.IsRecoverable(err) {
				reportInvalidInput(out)
				continue
			}
			return err
		}
		writeNearby(out, record.Name, nearby)
	}
}

// selectRecord resolves a 1-based selection.
func selectRecord(records []park.Record, selection string) (park.Record, error) {
	n, err := strconv.Atoi(selection)
	if err != nil {
		return park.Record{}, fmt.Errorf("selection %q is not a number", selection)
	}
	if n <= 0 || n > len(records) {
		return park.Record{}, fmt.Errorf("selection %d out of range 1-%d", n, len(records))
	}
	return records[n-1], nil
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func suggestionHint(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}
	return fmt.Sprintf("Did you mean: %s?", strings.Join(suggestions, ", "))
}

func reportInvalidInput(out io.Writer) {
	fmt.Fprintln(out, invalidInputMsg)
	fmt.Fprintln(out, strings.Repeat("-", 43))
}
