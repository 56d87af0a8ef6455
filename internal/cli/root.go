package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) Run(ctx context.Context) {

	fmt.Fprintf(a.out, "Welcome to lockbox (%s vault, type 'help' for commands)\n", a.config.Backend)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(a.out, "lockbox> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Available commands: add, get, update, upsert, delete, exit")

		case "add":
			a.add(ctx, args)
		case "get":
			a.get(ctx, args)
		case "update":
			a.update(ctx, args)
		case "upsert":
			a.upsert(ctx, args)
		case "delete":
			a.delete(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}
	}
}
