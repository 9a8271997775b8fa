package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kirkdiggler/dungeonmaster/internal/world"
)

// runREPL reads one free-form command per line from stdin and prints the
// engine's reply, until the player quits or stdin closes (spec §6: "Exit
// via quit. Exit code 0 on graceful shutdown"). quit/exit are handled here
// rather than round-tripped through HandleCommand so a save can always be
// exited cleanly even mid-command-recognition trouble.
func runREPL(ctx context.Context, w *world.World, playerID string) {
	fmt.Println("dungeonmaster: type a command, or 'help'. 'quit' to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Println("farewell")
			return
		}

		reply, err := w.HandleCommand(ctx, playerID, line)
		if err != nil {
			fmt.Println("hm, that didn't work:", err)
			continue
		}
		fmt.Println(reply)
	}
}
