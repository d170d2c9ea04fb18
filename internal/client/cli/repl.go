package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Ping(ctx context.Context) error
	Logout(ctx context.Context) error
	Home(ctx context.Context) error
	Profile(ctx context.Context) error
	Camera(ctx context.Context, path string) error
	Health(ctx context.Context) error
	Map(ctx context.Context, markerID string) error
	Route(ctx context.Context, markerID string) error
	Tickets(ctx context.Context, tab string) error
	Buy(ctx context.Context) error
	QR(ctx context.Context, ticketID string) error
	List(ctx context.Context, kind string) error
	Add(ctx context.Context, kind string) error
}

const (
	guestHelp = "Available commands: login, register, ping, exit"
	userHelp  = "Available commands: home, camera <file>, health, map [id], route <id>, " +
		"tickets [active|past], buy, qr <id>, profile, games, marks, regions, roles, teams, users, " +
		"addmark, addteam, addregion, addgame, ping, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the NatMan CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands of the signed-in area are refused
// while signed out and the other way round for login and register. The
// loop exits on EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers render
// their own alerts. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("natman %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "ping":
			_ = a.Ping(ctx)
			continue
		case "login", "register":
			if a.isLoggedIn() {
				printlnFn("Already signed in; logout first")
				continue
			}
			if cmd == "login" {
				_ = a.Login(ctx)
			} else {
				_ = a.Register(ctx)
			}
			continue
		}

		if !a.isLoggedIn() {
			if isUserCommand(cmd) {
				printlnFn("Please login first (type 'help' for commands)")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "home":
			_ = a.Home(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "camera":
			if arg == "" {
				printlnFn("Usage: camera <image-file>")
				continue
			}
			_ = a.Camera(ctx, arg)
		case "health":
			_ = a.Health(ctx)
		case "map":
			_ = a.Map(ctx, arg)
		case "route":
			if arg == "" {
				printlnFn("Usage: route <marker-id>")
				continue
			}
			_ = a.Route(ctx, arg)
		case "tickets":
			_ = a.Tickets(ctx, arg)
		case "buy":
			_ = a.Buy(ctx)
		case "qr":
			if arg == "" {
				printlnFn("Usage: qr <ticket-id>")
				continue
			}
			_ = a.QR(ctx, arg)
		case "games", "marks", "regions", "roles", "teams", "users":
			_ = a.List(ctx, cmd)
		case "addmark", "addteam", "addregion", "addgame":
			_ = a.Add(ctx, strings.TrimPrefix(cmd, "add"))
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isUserCommand(cmd string) bool {
	switch cmd {
	case "home", "profile", "camera", "health", "map", "route", "tickets", "buy", "qr",
		"games", "marks", "regions", "roles", "teams", "users",
		"addmark", "addteam", "addregion", "addgame", "logout":
		return true
	}
	return false
}
