package vcli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/veilcam/veilcam/internal/common"
	"github.com/veilcam/veilcam/internal/verifier"
)

// load reads a capsule from a local file, a URL or raw JSON pasted as the
// argument, validates it and makes it current.
func (a *App) load(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: load <file|url>")
		return
	}
	input := strings.Join(args, " ")

	// local files are read first; everything else goes to the parser as-is
	if data, err := os.ReadFile(input); err == nil {
		input = string(data)
	}

	c, err := a.parser.Parse(ctx, input)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorFetch):
			log.Printf("could not fetch the capsule: %s", err.Error())
		case errors.Is(err, common.ErrorInvalidCapsule):
			log.Printf("not a valid capsule: %s", err.Error())
		default:
			log.Println(err.Error())
		}
		return
	}

	a.current = c
	log.Printf("Loaded capsule %s with %d public claims", c.ID, len(c.PublicClaims))
}

func (a *App) claims() {
	if !a.hasCapsule() {
		return
	}
	if len(a.current.PublicClaims) == 0 {
		fmt.Println("This capsule discloses nothing")
		return
	}
	for _, claim := range a.current.Claims() {
		fmt.Printf("  %s: %s\n", claim.Name, claim.Value)
	}
}

func (a *App) verify(ctx context.Context) {
	if !a.hasCapsule() {
		return
	}

	ok, err := a.checker.Check(ctx, a.current)
	if err != nil {
		log.Printf("verification failed: %s", err.Error())
		return
	}
	if ok {
		fmt.Println("Proof verified")
	} else {
		fmt.Println("PROOF INVALID")
	}
}

// locks evaluates both lock state machines once.
func (a *App) locks(ctx context.Context) {
	if !a.hasCapsule() {
		return
	}

	st, err := a.timeLock.Status(ctx, a.current)
	if err != nil {
		log.Println(err.Error())
	} else if st == nil {
		fmt.Println("No time-lock on this capsule")
	} else {
		a.printTimeLock(st)
	}

	wst, err := a.walletLock.Connect(ctx, a.current, "")
	if err != nil {
		log.Println(err.Error())
	} else if wst == nil {
		fmt.Println("No wallet-lock on this capsule")
	} else {
		fmt.Printf("Wallet-lock: %s (allowed address %s)\n", wst.State, wst.AllowedAddress)
	}
}

func (a *App) printTimeLock(st *verifier.TimeLockStatus) {
	switch st.State {
	case verifier.StateLocked:
		fmt.Printf("Time-lock: locked until %s (%s remaining)\n",
			st.Until.Format(time.RFC3339), st.Remaining.Round(time.Second))
	case verifier.StateUnlocked:
		fmt.Printf("Time-lock: unlocked, content: %s\n", st.Payload)
	}
	if !st.TrustedTime {
		fmt.Println("  warning: no external time source reachable, using the local clock")
	}
}

// watch polls the time-lock until it unlocks or the user interrupts.
func (a *App) watch(ctx context.Context) {
	if !a.hasCapsule() {
		return
	}

	err := a.timeLock.Watch(ctx, a.current, a.printTimeLock)
	if err != nil {
		log.Println(err.Error())
	}
}

func (a *App) connect(ctx context.Context, args []string) {
	if !a.hasCapsule() {
		return
	}
	address := ""
	if len(args) > 0 {
		address = args[0]
	}

	st, err := a.walletLock.Connect(ctx, a.current, address)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if st == nil {
		fmt.Println("No wallet-lock on this capsule")
		return
	}

	switch st.State {
	case verifier.StateLocked:
		fmt.Printf("Wallet %q does not match the allowed address\n", st.ConnectedWallet)
	case verifier.StateUnlocked:
		fmt.Printf("Wallet matched, content: %s\n", st.Payload)
	}
}
