package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/tinashem/dukabook/internal/models"
)

func (a *App) addProduct(ctx context.Context) {
	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}

	name, err := GetSimpleText(a.reader, "Product name", a.out)
	if err != nil {
		a.printError(err)
		return
	}
	selling, err := GetNumber(a.reader, "Selling price", 0, a.out)
	if err != nil {
		a.printError(err)
		return
	}
	buying, err := GetNumber(a.reader, "Buying price (empty for 0)", 0, a.out)
	if err != nil {
		a.printError(err)
		return
	}
	stock, err := GetNumber(a.reader, "Opening stock (empty for 0)", 0, a.out)
	if err != nil {
		a.printError(err)
		return
	}

	p := &models.Product{
		ShopID:       shop.ID,
		Name:         name,
		SellingPrice: selling,
		BuyingPrice:  buying,
		Stock:        stock,
		Unit:         "pcs",
	}
	if err := a.products.Create(ctx, p); err != nil {
		a.printError(err)
		return
	}
	a.printOK("Added %q at %.2f %s", p.Name, p.SellingPrice, shop.Currency)
}

func (a *App) listProducts(ctx context.Context) {
	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	list, err := a.products.List(ctx, shop.ID)
	if err != nil {
		a.printError(err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No products yet.")
		return
	}

	low := color.New(color.FgYellow)
	for _, p := range list {
		line := fmt.Sprintf("%-30s %10.2f  stock %.1f %s", p.Name, p.SellingPrice, p.Stock, p.Unit)
		if p.Stock <= p.MinStock {
			low.Fprintln(a.out, line+"  (low)")
		} else {
			fmt.Fprintln(a.out, line)
		}
	}
}
