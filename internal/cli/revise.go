package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/veilcam/veilcam/internal/capsule"
	"github.com/veilcam/veilcam/internal/common"
)

func (a *App) reveal(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: reveal <capsule-id>")
		return
	}
	if !a.requireUnlocked() {
		return
	}

	c, err := a.repos.Collection.GetByID(ctx, args[0])
	if err != nil {
		log.Println(err.Error())
		return
	}

	settings, err := a.promptSettings()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	a.revise(ctx, c, settings)
}

func (a *App) hide(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: hide <capsule-id>")
		return
	}
	if !a.requireUnlocked() {
		return
	}

	c, err := a.repos.Collection.GetByID(ctx, args[0])
	if err != nil {
		log.Println(err.Error())
		return
	}

	a.revise(ctx, c, &capsule.Settings{})
}

func (a *App) revise(ctx context.Context, c *capsule.Capsule, settings *capsule.Settings) {
	revised, err := a.revision.Revise(ctx, c, settings)
	if err != nil {
		if errors.Is(err, common.ErrorNoOriginalValue) {
			log.Printf("cannot revise %s: the private vault for it is gone", c.ID)
			return
		}
		log.Println(err.Error())
		return
	}
	log.Printf("Capsule %s now carries %d public claims", revised.ID, len(revised.PublicClaims))
}
