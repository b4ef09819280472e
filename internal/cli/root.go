package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.isUnlocked() {
		return "(unlocked)"
	}
	return "(locked)"
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to VeilCam CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.unlock(ctx)

	for {
		fmt.Printf("veilcam %s> ", a.getStatus())
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
			if a.isUnlocked() {
				fmt.Println("Available commands: capture, (l)ist, show <id>, reveal <id>, hide <id>, offer <id>, offers <id>, accept <offer-id>, reject <offer-id>, delete <id>, lock, exit")
			} else {
				fmt.Println("Available commands: unlock, exit")
			}

		case "unlock":
			a.unlock(ctx)
		case "lock":
			a.lock()
		case "capture":
			a.captureCmd(ctx)
		case "l", "list":
			a.list(ctx)
		case "show":
			a.show(ctx, args)
		case "reveal":
			a.reveal(ctx, args)
		case "hide":
			a.hide(ctx, args)
		case "offer":
			a.placeOffer(ctx, args)
		case "offers":
			a.listOffers(ctx, args)
		case "accept":
			a.resolveOffer(ctx, args, true)
		case "reject":
			a.resolveOffer(ctx, args, false)
		case "delete":
			a.delete(ctx, args)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *App) requireUnlocked() bool {
	if !a.isUnlocked() {
		fmt.Println("The vault is locked; run 'unlock' first")
		return false
	}
	return true
}
