package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from in and writes prompts to out.
type prompter struct {
	out          io.Writer
	in           io.Reader
	reader       *bufio.Reader
	readPassword func() ([]byte, error)
}

func readTerminalPassword() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func (p *prompter) lineReader() *bufio.Reader {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}
	return p.reader
}

// promptLine prints label and reads one trimmed line. A final line
// without a newline is accepted.
func (p *prompter) promptLine(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label+": "); err != nil {
		return "", err
	}
	line, err := p.lineReader().ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword prints label and reads a password without echo.
func (p *prompter) promptPassword(label string) (string, error) {
	if _, err := fmt.Fprint(p.out, label+": "); err != nil {
		return "", err
	}
	pw, err := p.readPassword()
	fmt.Fprintln(p.out) //nolint:errcheck
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

// readAll returns stdin unchanged, for piping input into translate.
func (p *prompter) readAll() (string, error) {
	data, err := io.ReadAll(p.lineReader())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
