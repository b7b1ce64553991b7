package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// App is the line-oriented terminal client. It drives the same services as
// the HTTP surfaces and owns records under the local user.
type App struct {
	finance     *services.FinanceService
	reports     *services.ReportService
	simulations *services.SimulationService
	categories  services.CategoryStore

	in  *bufio.Scanner
	out io.Writer
}

func NewApp(finance *services.FinanceService, reports *services.ReportService,
	simulations *services.SimulationService, categories services.CategoryStore,
	in io.Reader, out io.Writer) *App {
	return &App{
		finance:     finance,
		reports:     reports,
		simulations: simulations,
		categories:  categories,
		in:          bufio.NewScanner(in),
		out:         out,
	}
}

// Run loops on the menu until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		a.printMenu()
		choice, ok := a.prompt("> ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			a.addTransaction(ctx)
		case "2":
			a.listTransactions(ctx)
		case "3":
			a.removeTransaction(ctx)
		case "4":
			a.showBalance(ctx)
		case "5":
			a.showReport(ctx, core.GroupByCategory)
		case "6":
			a.showReport(ctx, core.GroupByMonth)
		case "7":
			a.simulate(ctx)
		case "0", "q":
			fmt.Fprintln(a.out, "bye")
			return nil
		default:
			fmt.Fprintln(a.out, "unknown option")
		}
	}
}

func (a *App) printMenu() {
	fmt.Fprint(a.out, `
fintrack
  1) add transaction
  2) list transactions
  3) remove transaction
  4) balance
  5) report by category
  6) report by month
  7) simulate contributions
  0) quit
`)
}

func (a *App) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// promptMoney keeps asking until the input parses as an amount. Returns false
// only when input ends.
func (a *App) promptMoney(label string) (core.Money, bool) {
	for {
		s, ok := a.prompt(label)
		if !ok {
			return core.Money{}, false
		}
		amount, err := core.NewMoney(s)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v, try again\n", err)
			continue
		}
		return amount, true
	}
}

// promptMoneyList reads a comma-separated list of amounts, re-asking until
// every entry parses and the list is non-empty.
func (a *App) promptMoneyList(label string) ([]core.Money, bool) {
	for {
		s, ok := a.prompt(label)
		if !ok {
			return nil, false
		}
		parts := strings.Split(s, ",")
		amounts := make([]core.Money, 0, len(parts))
		valid := true
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			amount, err := core.NewMoney(p)
			if err != nil {
				fmt.Fprintf(a.out, "error: %v, try again\n", err)
				valid = false
				break
			}
			amounts = append(amounts, amount)
		}
		if !valid {
			continue
		}
		if len(amounts) == 0 {
			fmt.Fprintln(a.out, "error: enter at least one amount, try again")
			continue
		}
		return amounts, true
	}
}

func (a *App) addTransaction(ctx context.Context) {
	kind, ok := a.prompt("kind (income/expense): ")
	if !ok {
		return
	}
	amount, ok := a.promptMoney("amount: ")
	if !ok {
		return
	}
	description, ok := a.prompt("description: ")
	if !ok {
		return
	}

	if categories, err := a.categories.List(ctx); err == nil {
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = c.Name
		}
		fmt.Fprintf(a.out, "categories: %s\n", strings.Join(names, ", "))
	}
	category, ok := a.prompt("category: ")
	if !ok {
		return
	}

	dateStr, ok := a.prompt("date (YYYY-MM-DD, blank for today): ")
	if !ok {
		return
	}
	var occurredAt time.Time
	if dateStr != "" {
		var err error
		occurredAt, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Fprintf(a.out, "error: invalid date %q\n", dateStr)
			return
		}
	}

	tx, err := a.finance.AddTransaction(ctx, services.LocalUserID,
		core.Kind(kind), amount, description, category, occurredAt)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "added %s  %s  %s (%s)\n",
		tx.ID, tx.SignedAmount(), tx.Description, tx.Category.Name)
}

func (a *App) listTransactions(ctx context.Context) {
	txs, err := a.finance.ListTransactions(ctx, services.LocalUserID)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if len(txs) == 0 {
		fmt.Fprintln(a.out, "no transactions")
		return
	}
	for _, tx := range txs {
		fmt.Fprintf(a.out, "%s  %s  %10s  %-12s  %s\n",
			tx.ID, tx.OccurredAt.Format("2006-01-02"),
			tx.SignedAmount(), tx.Category.Name, tx.Description)
	}
}

func (a *App) removeTransaction(ctx context.Context) {
	id, ok := a.prompt("transaction id: ")
	if !ok {
		return
	}
	if err := a.finance.RemoveTransaction(ctx, id, services.LocalUserID); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "removed")
}

func (a *App) showBalance(ctx context.Context) {
	balance, err := a.finance.Balance(ctx, services.LocalUserID)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "balance: %s\n", balance)
}

func (a *App) showReport(ctx context.Context, groupBy core.GroupBy) {
	var (
		report map[string]core.Money
		err    error
	)
	if groupBy == core.GroupByMonth {
		report, err = a.reports.ByMonth(ctx, services.LocalUserID, nil)
	} else {
		report, err = a.reports.ByCategory(ctx, services.LocalUserID, nil)
	}
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if len(report) == 0 {
		fmt.Fprintln(a.out, "nothing to report")
		return
	}

	keys := make([]string, 0, len(report))
	for k := range report {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%-20s %12s\n", k, report[k])
	}
}

func (a *App) simulate(ctx context.Context) {
	mode, ok := a.prompt("mode (fixed/variable/compare, blank for fixed): ")
	if !ok {
		return
	}
	if mode == "" {
		mode = "fixed"
	}
	if mode != "fixed" && mode != "variable" && mode != "compare" {
		fmt.Fprintf(a.out, "error: unknown mode %q\n", mode)
		return
	}

	initial, ok := a.promptMoney("initial amount: ")
	if !ok {
		return
	}

	var contribution core.Money
	var contributions []core.Money
	if mode == "fixed" {
		if contribution, ok = a.promptMoney("monthly contribution: "); !ok {
			return
		}
	} else {
		if contributions, ok = a.promptMoneyList("contributions (comma separated): "); !ok {
			return
		}
	}

	rateStr, ok := a.prompt("monthly rate %: ")
	if !ok {
		return
	}
	var ratePercent float64
	if _, err := fmt.Sscanf(rateStr, "%f", &ratePercent); err != nil {
		fmt.Fprintf(a.out, "error: invalid rate %q\n", rateStr)
		return
	}

	months := 0
	if mode != "variable" {
		monthsStr, ok := a.prompt("months: ")
		if !ok {
			return
		}
		if _, err := fmt.Sscanf(monthsStr, "%d", &months); err != nil {
			fmt.Fprintf(a.out, "error: invalid horizon %q\n", monthsStr)
			return
		}
	}

	switch mode {
	case "fixed":
		result, err := a.simulations.FixedProjection(ctx, initial, contribution, ratePercent/100, months)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		a.printSimulation(result)
	case "variable":
		result, err := a.simulations.VariableProjection(ctx, initial, contributions, ratePercent/100)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		a.printSimulation(result)
	case "compare":
		scenarios, err := a.simulations.Compare(ctx, initial, contributions, ratePercent/100, months)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		keys := make([]string, 0, len(scenarios))
		for k := range scenarios {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			result := scenarios[k]
			fmt.Fprintf(a.out, "contribution %s:\n", k)
			a.printSimulation(result)
		}
	}
}

func (a *App) printSimulation(result core.SimulationResult) {
	fmt.Fprintf(a.out, "final balance:     %s\n", result.FinalBalance)
	fmt.Fprintf(a.out, "total contributed: %s\n", result.TotalContributed)
	fmt.Fprintf(a.out, "total profit:      %s\n", result.TotalProfit)
}
