package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/veilcam/veilcam/internal/common"
)

func (a *App) placeOffer(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: offer <capsule-id>")
		return
	}
	capsuleID := args[0]

	if _, err := a.repos.Collection.GetByID(ctx, capsuleID); err != nil {
		log.Println(err.Error())
		return
	}

	field, err := GetSimpleText(a.reader, "Field the offer is for (e.g. location_city)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	label, err := GetSimpleText(a.reader, "Offer label", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	from, err := GetSimpleText(a.reader, "From", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	rawAmount, err := GetSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		log.Printf("not a number: %s", rawAmount)
		return
	}
	currency, err := GetSimpleText(a.reader, "Currency", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	o, err := a.offerService.Place(ctx, capsuleID, field, label, from, amount, currency)
	if err != nil {
		log.Println(err.Error())
		return
	}
	log.Printf("Offer %s placed", o.ID)
}

func (a *App) listOffers(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: offers <capsule-id>")
		return
	}

	list, err := a.offerService.List(ctx, args[0])
	if err != nil {
		log.Println(err.Error())
		return
	}
	if len(list) == 0 {
		fmt.Println("No offers for this capsule")
		return
	}

	for _, o := range list {
		created := time.UnixMilli(o.CreatedAt).UTC().Format(time.RFC3339)
		fmt.Printf("%s  [%s]  %s: %s, %.2f %s from %s (%s)\n",
			o.ID, o.Status, o.Field, o.Label, o.Amount, o.Currency, o.From, created)
	}
}

func (a *App) resolveOffer(ctx context.Context, args []string, accept bool) {
	if len(args) == 0 {
		fmt.Println("Usage: accept|reject <offer-id>")
		return
	}

	var err error
	if accept {
		err = a.offerService.Accept(ctx, args[0])
	} else {
		err = a.offerService.Reject(ctx, args[0])
	}
	if err != nil {
		if errors.Is(err, common.ErrorOfferNotPending) {
			log.Printf("offer %s is already resolved", args[0])
			return
		}
		log.Println(err.Error())
		return
	}

	if accept {
		log.Printf("Offer %s accepted; run 'reveal' to actually disclose the field", args[0])
	} else {
		log.Printf("Offer %s rejected", args[0])
	}
}
