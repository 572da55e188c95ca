package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/oshinavi/auth"
	"github.com/amonks/oshinavi/subcmd"
	"golang.org/x/term"
)

func hashPassword(args []string) error {
	subcmd := subcmd.New("hash-password", "read a password and print its bcrypt hash\nput the hash in OSHINAVI_AUTH_HASH to require basic auth for changes")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	password, err := readPassword()
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

// readPassword prompts without echo on a terminal, and otherwise reads one
// line from stdin.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "password: ")
		bs, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		return string(bs), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("error reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
