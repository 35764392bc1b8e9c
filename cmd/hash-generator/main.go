// Command hash-generator prints a bcrypt hash for a password typed at the
// terminal, for seeding users by hand.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/phrazzld/bloglist-api/internal/domain"
	"github.com/phrazzld/bloglist-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	password, err := readPassword(os.Stdin, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}

	hash, err := hashPassword(auth.NewBcryptHasher(*cost), password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}

// readPassword prompts without echo on a terminal and reads one line
// otherwise, so the tool also works in pipes.
func readPassword(in *os.File, prompt io.Writer) (string, error) {
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// hashPassword applies the registration length rules before hashing.
func hashPassword(hasher auth.PasswordHasher, password string) (string, error) {
	if len(password) < domain.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters long", domain.MinPasswordLength)
	}
	if len(password) > domain.MaxPasswordLength {
		return "", fmt.Errorf("password must be at most %d bytes long", domain.MaxPasswordLength)
	}
	return hasher.Hash(password)
}
