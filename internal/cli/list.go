package cli

import (
	"context"
	"fmt"
	"log"
	"time"
)

func (a *App) list(ctx context.Context) {
	items, err := a.repos.Collection.GetAll(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(items) == 0 {
		fmt.Println("No capsules yet")
		return
	}

	for _, c := range items {
		created := time.UnixMilli(c.Metadata.CreatedAt).UTC().Format(time.RFC3339)
		fmt.Printf("%s  %s  %d claims\n", c.ID, created, len(c.PublicClaims))
	}
}

func (a *App) show(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: show <capsule-id>")
		return
	}

	c, err := a.repos.Collection.GetByID(ctx, args[0])
	if err != nil {
		log.Println(err.Error())
		return
	}

	fmt.Printf("Capsule %s\n", c.ID)
	fmt.Printf("  created:  %s\n", time.UnixMilli(c.Metadata.CreatedAt).UTC().Format(time.RFC3339))
	fmt.Printf("  scheme:   %s (%s)\n", c.Metadata.ProofScheme, c.Metadata.CircuitVersion)
	if c.Metadata.ImageCID != "" {
		fmt.Printf("  media:    %s\n", c.Metadata.ImageCID)
	}
	if len(c.PublicClaims) == 0 {
		fmt.Println("  claims:   (none)")
		return
	}
	fmt.Println("  claims:")
	for _, claim := range c.Claims() {
		fmt.Printf("    %s: %s\n", claim.Name, claim.Value)
	}
}

func (a *App) delete(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: delete <capsule-id>")
		return
	}
	if err := a.repos.DeleteCapsule(ctx, args[0]); err != nil {
		log.Println(err.Error())
		return
	}
	log.Printf("Capsule %s deleted, vault included", args[0])
}
