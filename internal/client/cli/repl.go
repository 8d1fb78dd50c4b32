package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/matcheat/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ChangeHandle(ctx context.Context) error
	ChangeEmail(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ChangeImage(ctx context.Context) error
	ChangeSettings(ctx context.Context, args []string) error
	DeleteAccount(ctx context.Context) error
	CreateHome(ctx context.Context) error
	JoinHome(ctx context.Context) error
	LeaveHome(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, upload <file>, exit"
	helpLoggedIn  = "Available commands: whoami, handle, email, password, image, settings [on|off], delete, " +
		"createhome, joinhome, leavehome, upload <file>, logout, exit"
)

// runREPL starts a read–eval–print loop for the matcheat CLI.
//
// It reads a line from scanner, parses the first token as the command and
// dispatches to a. Command errors are printed and the loop goes on. The
// loop exits on scanner EOF or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("me> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "upload":
			err = a.Upload(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "whoami", "handle", "email", "password", "image", "settings", "delete",
			"createhome", "joinhome", "leavehome", "logout":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = dispatchLoggedIn(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", api.Message(err))
		}
	}
}

func dispatchLoggedIn(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "whoami":
		return a.WhoAmI(ctx)
	case "handle":
		return a.ChangeHandle(ctx)
	case "email":
		return a.ChangeEmail(ctx)
	case "password":
		return a.ChangePassword(ctx)
	case "image":
		return a.ChangeImage(ctx)
	case "settings":
		return a.ChangeSettings(ctx, args)
	case "delete":
		return a.DeleteAccount(ctx)
	case "createhome":
		return a.CreateHome(ctx)
	case "joinhome":
		return a.JoinHome(ctx)
	case "leavehome":
		return a.LeaveHome(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
