package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"radialmenu/src/store"

	"golang.org/x/term"
)

// CLIProcessing is a tiny terminal preset browser: pick which preset the
// popup comes up with without opening the editor.
type CLIProcessing struct {
	store *store.Store
	in    *os.File
	out   io.Writer
}

func NewCLI(s *store.Store) *CLIProcessing {
	return &CLIProcessing{store: s, in: os.Stdin, out: os.Stdout}
}

// raw processing
// - up/down or j/k to move
// - enter to set the active preset
// - q or Ctrl+C to exit
func (c *CLIProcessing) Run() error {
	fd := int(c.in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return c.RunLineMode()
	}
	defer term.Restore(fd, oldState) //nolint:errcheck

	r := bufio.NewReader(c.in)
	cursor := 0

	if err := c.draw(cursor); err != nil {
		return err
	}

	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}

		if b == 3 { // Ctrl+C
			fmt.Fprint(c.out, "\r\n")
			return nil
		}
		if b == 0x1b { // escape sequence — possible arrow
			b1, err := r.ReadByte()
			if err != nil {
				continue
			}
			b2, err := r.ReadByte()
			if err != nil {
				continue
			}
			if b1 == '[' {
				switch b2 {
				case 'A':
					cursor--
				case 'B':
					cursor++
				}
				if err := c.draw(cursor); err != nil {
					return err
				}
			}
			continue
		}

		switch b {
		case 'q', 'Q':
			fmt.Fprint(c.out, "\r\n")
			return nil
		case 'j':
			cursor++
		case 'k':
			cursor--
		case '\r', '\n':
			names, err := c.store.PresetNames()
			if err != nil {
				return err
			}
			cursor = clampCursor(cursor, len(names))
			if len(names) > 0 {
				if err := c.store.SetActive(names[cursor]); err != nil {
					return err
				}
			}
		}
		if err := c.draw(cursor); err != nil {
			return err
		}
	}
}

func clampCursor(cursor, n int) int {
	if n == 0 {
		return 0
	}
	return ((cursor % n) + n) % n
}

func (c *CLIProcessing) draw(cursor int) error {
	names, err := c.store.PresetNames()
	if err != nil {
		return err
	}
	cycling, err := c.store.CyclingNames()
	if err != nil {
		return err
	}
	active, err := c.store.ActivePreset()
	if err != nil {
		return err
	}
	inCycle := make(map[string]bool, len(cycling))
	for _, n := range cycling {
		inCycle[n] = true
	}
	cursor = clampCursor(cursor, len(names))

	// clear and home
	fmt.Fprint(c.out, "\033[2J\033[H")
	fmt.Fprint(c.out, "presets (enter = activate, j/k = move, q = quit)\r\n\r\n")
	for i, n := range names {
		marker := "  "
		if i == cursor {
			marker = "> "
		}
		flags := ""
		if n == active {
			flags += " *active*"
		}
		if !inCycle[n] {
			flags += " (out of cycle)"
		}
		fmt.Fprintf(c.out, "%s%s%s\r\n", marker, n, flags)
	}
	return nil
}

// RunLineMode is the dumb fallback when the terminal cannot go raw.
func (c *CLIProcessing) RunLineMode() error {
	names, err := c.store.PresetNames()
	if err != nil {
		return err
	}
	active, err := c.store.ActivePreset()
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "presets:")
	for _, n := range names {
		if n == active {
			fmt.Fprintf(c.out, "  %s *active*\n", n)
		} else {
			fmt.Fprintf(c.out, "  %s\n", n)
		}
	}
	fmt.Fprint(c.out, "activate (empty to keep): ")

	sc := bufio.NewScanner(c.in)
	if !sc.Scan() {
		return sc.Err()
	}
	choice := strings.TrimSpace(sc.Text())
	if choice == "" {
		return nil
	}
	return c.store.SetActive(choice)
}
