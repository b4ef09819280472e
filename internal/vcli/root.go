package vcli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.current == nil {
		return "(no capsule)"
	}
	return "(" + a.current.ID + ")"
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("VeilCam verifier (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("verify %s> ", a.getStatus())
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
			fmt.Println("Available commands: load <file|url>, claims, verify, locks, watch, connect <address>, exit")
		case "load":
			a.load(ctx, args)
		case "claims":
			a.claims()
		case "verify":
			a.verify(ctx)
		case "locks":
			a.locks(ctx)
		case "watch":
			a.watch(ctx)
		case "connect":
			a.connect(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
