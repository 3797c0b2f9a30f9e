package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/tinashem/dukabook/internal/common"
	"github.com/tinashem/dukabook/internal/models"
)

// currentShop resolves the logged-in user's primary shop. Commands that
// touch business records all go through here.
func (a *App) currentShop(ctx context.Context) (*models.Shop, error) {
	sess := a.sessions.Get(ctx)
	if sess == nil {
		return nil, errors.New("not logged in")
	}
	shop, err := a.shops.GetPrimary(ctx, sess.Principal.ID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errors.New("no shop yet; run 'shop create' first")
	}
	return shop, err
}

func (a *App) shop(ctx context.Context, args []string) {
	if len(args) == 1 && args[0] == "create" {
		a.createShop(ctx)
		return
	}

	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	fmt.Fprintf(a.out, "%s (%s, %s)\n", shop.Name, shop.Currency, shop.Timezone)
}

func (a *App) createShop(ctx context.Context) {
	sess := a.sessions.Get(ctx)
	if sess == nil {
		a.printError(errors.New("not logged in"))
		return
	}

	name, err := GetSimpleText(a.reader, "Shop name", a.out)
	if err != nil {
		a.printError(err)
		return
	}
	currency, err := GetSimpleText(a.reader, "Currency code (empty for KES)", a.out)
	if err != nil {
		a.printError(err)
		return
	}

	shop := &models.Shop{UserID: sess.Principal.ID, Name: name, Currency: currency}
	if err := a.shops.Create(ctx, shop); err != nil {
		a.printError(err)
		return
	}
	a.printOK("Shop %q created", shop.Name)
}
