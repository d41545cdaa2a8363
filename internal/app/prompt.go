package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chrissnell/ptolemy/pkg/birthtime"
)

// prompter reads one answer per line and re-asks on invalid input
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *prompter) println(s string) {
	fmt.Fprintln(p.out, s)
}

// askString returns the trimmed answer. Running out of input is an error.
func (p *prompter) askString(question string) (string, error) {
	p.printf("%s", question)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) askInt(question string, lo, hi int) (int, error) {
	for {
		line, err := p.askString(question)
		if err != nil {
			return 0, err
		}
		n, err := parseInt(line, lo, hi)
		if err == nil {
			return n, nil
		}
		p.printf("%v\n", err)
	}
}

func (p *prompter) askYesNo(question string) (bool, error) {
	for {
		line, err := p.askString(question)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		p.println("Invalid input. Please enter either 'yes' or 'no'.")
	}
}

func (p *prompter) askBirthTime() (birthtime.BirthTime, error) {
	for {
		var b birthtime.BirthTime
		var err error

		if b.Year, err = p.askInt("Enter the year (xxxx): ", 1, 9999); err != nil {
			return b, err
		}
		if b.Month, err = p.askInt("Enter the month (1-12): ", 1, 12); err != nil {
			return b, err
		}
		if b.Day, err = p.askInt("Enter the day (1-31): ", 1, 31); err != nil {
			return b, err
		}
		if b.Hour, err = p.askInt("Enter the hour (1-12): ", 1, 12); err != nil {
			return b, err
		}
		if b.Minute, err = p.askInt("Enter the minute (0-59): ", 0, 59); err != nil {
			return b, err
		}
		for {
			line, err := p.askString("Enter either AM or PM: ")
			if err != nil {
				return b, err
			}
			if ampm := strings.ToUpper(line); ampm == "AM" || ampm == "PM" {
				b.AMPM = ampm
				break
			}
			p.println("Invalid input. Please enter either 'AM' or 'PM'.")
		}

		// day-of-month is only checkable once the month and year are known
		if err := b.Validate(); err != nil {
			p.printf("%v. Please enter the date again.\n", err)
			continue
		}
		return b, nil
	}
}

func parseInt(s string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid input %q: please enter a number from %d to %d", s, lo, hi)
	}
	return n, nil
}
