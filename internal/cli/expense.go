package cli

import (
	"context"
	"fmt"

	"github.com/tinashem/dukabook/internal/models"
)

func (a *App) addExpense(ctx context.Context) {
	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}

	category, err := GetSimpleText(a.reader, "Category (rent, stock, transport, ...)", a.out)
	if err != nil {
		a.printError(err)
		return
	}
	amount, err := GetNumber(a.reader, "Amount", 0, a.out)
	if err != nil {
		a.printError(err)
		return
	}
	description, err := GetSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		a.printError(err)
		return
	}

	e := &models.Expense{
		ShopID:      shop.ID,
		Category:    category,
		Amount:      amount,
		Description: description,
	}
	if err := a.expenses.Create(ctx, e); err != nil {
		a.printError(err)
		return
	}
	a.printOK("Expense recorded: %.2f %s (%s)", e.Amount, shop.Currency, e.Category)
}

func (a *App) listExpenses(ctx context.Context) {
	shop, err := a.currentShop(ctx)
	if err != nil {
		a.printError(err)
		return
	}
	list, err := a.expenses.List(ctx, shop.ID)
	if err != nil {
		a.printError(err)
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No expenses yet.")
		return
	}

	var total float64
	for _, e := range list {
		fmt.Fprintf(a.out, "%s  %10.2f  %-12s %s\n",
			e.ExpenseDate.Local().Format("2006-01-02"), e.Amount, e.Category, e.Description)
		total += e.Amount
	}
	fmt.Fprintf(a.out, "%d expenses, %.2f %s total\n", len(list), total, shop.Currency)
}
