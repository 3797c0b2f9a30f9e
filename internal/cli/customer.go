package cli

import (
	"context"
	"fmt"

	"github.com/tinashem/dukabook/internal/models"
)

func (a *App) addCustomer(ctx context.Context) {
	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}

	name, err := GetSimpleText(a.reader, "Customer name", a.out)
	if err != nil {
		a.printError(err)
		return
	}
	phone, err := GetSimpleText(a.reader, "Phone (optional)", a.out)
	if err != nil {
		a.printError(err)
		return
	}

	c := &models.Customer{ShopID: shop.ID, Name: name, Phone: phone}
	if err := a.customers.Create(ctx, c); err != nil {
		a.printError(err)
		return
	}
	a.printOK("Customer %q added", c.Name)
}

func (a *App) listCustomers(ctx context.Context) {
	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	list, err := a.customers.List(ctx, shop.ID)
	if err != nil {
		a.printError(err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No customers yet.")
		return
	}
	for _, c := range list {
		fmt.Fprintf(a.out, "%-30s %s\n", c.Name, c.Phone)
	}
}
