package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/tinashem/dukabook/internal/models"
)

// sell records a sale interactively: the user picks products by list number
// and a quantity, finishing on an empty line.
func (a *App) sell(ctx context.Context) {
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
		fmt.Fprintln(a.out, "No products to sell. Run 'addproduct' first.")
		return
	}

	for i, p := range list {
		fmt.Fprintf(a.out, "%3d. %-30s %10.2f (stock %.1f)\n", i+1, p.Name, p.SellingPrice, p.Stock)
	}

	sale := &models.Sale{ShopID: shop.ID}
	for {
		text, err := GetSimpleText(a.reader, "Item number (empty to finish)", a.out)
		if err != nil {
			a.printError(err)
			return
		}
		if text == "" {
			break
		}
		var idx int
		if _, err := fmt.Sscanf(text, "%d", &idx); err != nil || idx < 1 || idx > len(list) {
			fmt.Fprintln(a.out, "No such item.")
			continue
		}
		p := list[idx-1]

		qty, err := GetNumber(a.reader, "Quantity", 1, a.out)
		if err != nil {
			a.printError(err)
			continue
		}
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID: p.ID,
			Quantity:  qty,
			UnitPrice: p.SellingPrice,
		})
	}
	if len(sale.Items) == 0 {
		fmt.Fprintln(a.out, "Nothing sold.")
		return
	}

	method, err := GetSimpleText(a.reader, "Payment (cash/card/mobile/credit, empty for cash)", a.out)
	if err != nil {
		a.printError(err)
		return
	}
	if method != "" {
		sale.PaymentMethod = models.PaymentMethod(strings.ToLower(method))
	}

	if err := a.sales.Record(ctx, sale); err != nil {
		a.printError(err)
		return
	}
	a.printOK("Sale recorded: %.2f %s (%s)", sale.Total, shop.Currency, sale.PaymentMethod)
}

func (a *App) listSales(ctx context.Context) {
	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	list, err := a.sales.List(ctx, shop.ID)
	if err != nil {
		a.printError(err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No sales yet.")
		return
	}

	var total float64
	for _, s := range list {
		fmt.Fprintf(a.out, "%s  %10.2f  %s\n", s.SaleDate.Local().Format("2006-01-02 15:04"), s.Total, s.PaymentMethod)
		total += s.Total
	}
	fmt.Fprintf(a.out, "%d sales, %.2f %s total\n", len(list), total, shop.Currency)
}
