// Package handler implements the interactive menu actions.  Each action
// reads its input from a Session, calls the reservation service and
// prints the outcome; none of them touches the stores directly.
package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Role is the kind of user attached to a Session.
type Role string

const (
	RoleGuest    Role = ""
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

var (
	// ErrBack leaves the current menu and returns to the one above it.
	ErrBack = errors.New("back to previous menu")
	// ErrExit ends the program.
	ErrExit = errors.New("exit")
)

// Action is one menu entry.
type Action func(s *Session) error

// Session holds the terminal streams and who is logged in.  One Session
// lives for the whole run; logging out only resets Role and NationalID.
type Session struct {
	in  *bufio.Scanner // in yields one answer per line
	out io.Writer      // out receives prompts and messages

	Role       Role   // Role selects which menu actions are allowed
	NationalID string // NationalID identifies the customer, empty for admins
}

// NewSession reads answers from in and writes prompts and messages to out.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{in: bufio.NewScanner(in), out: out}
}

// Prompt writes label and returns the next input line without surrounding
// whitespace.  It returns io.EOF once the input is exhausted.
func (s *Session) Prompt(label string) (string, error) {
	fmt.Fprint(s.out, label) // prompt stays on the same line as the answer
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintln(s.out) // end the dangling prompt line
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// Println writes a line of output.
func (s *Session) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

// Printf writes formatted output.
func (s *Session) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// Login attaches role and national id to the session.
func (s *Session) Login(role Role, nationalID string) {
	s.Role = role
	s.NationalID = nationalID
}

// Logout resets the session to a guest.
func (s *Session) Logout() {
	s.Role = RoleGuest
	s.NationalID = ""
}
