package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"budgetbook/internal/cli"
	"budgetbook/internal/core"
	"budgetbook/internal/log"
	"budgetbook/internal/report"
	"budgetbook/internal/store"
	"budgetbook/internal/transfer"
)

func main() {
	cli.LoadEnvFile()

	storagePath := flag.String("storage", "", "override the JSON data file path")
	backend := flag.String("backend", "", "data backend: json or sqlite")
	flag.Usage = usage
	flag.Parse()

	cfg, err := cli.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *storagePath != "" {
		cfg.DataBackend = "json"
		cfg.DataFile = *storagePath
	}
	if *backend != "" {
		cfg.DataBackend = *backend
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := cli.SetupLogger(cfg.LogLevel)

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if args[0] == "selftest" {
		if err := runSelfTest(logger); err != nil {
			logger.Error("self-test failed", log.FieldError, err)
			os.Exit(1)
		}
		fmt.Println("self-test passed")
		return
	}

	ctx := context.Background()
	s, cleanup, err := cli.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", log.FieldError, err)
		os.Exit(1)
	}
	defer cleanup()

	if err := run(ctx, s, logger, args); err != nil {
		logger.Error("command failed", "command", args[0], log.FieldError, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, s *store.Store, logger *log.Logger, args []string) error {
	command, rest := args[0], args[1:]
	month := report.AllMonths
	if len(rest) > 0 {
		month = rest[0]
	}

	switch command {
	case "add":
		return addTransaction(ctx, s, rest)

	case "list":
		printTransactions(report.TransactionsForMonth(s.Transactions(), month))
		return nil

	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: delete <id>")
		}
		s.DeleteTransaction(rest[0])
		return s.Save(ctx)

	case "set-budget":
		if len(rest) != 2 {
			return fmt.Errorf("usage: set-budget <category> <monthly-limit>")
		}
		limit, err := strconv.ParseFloat(rest[1], 64)
		if err != nil {
			return &core.ValidationError{Field: "monthly_limit", Value: rest[1], Reason: "not a number"}
		}
		s.AddBudget(rest[0], limit)
		return s.Save(ctx)

	case "summary":
		printSummary(s.Transactions(), month)
		return nil

	case "categories":
		printCategoryTotals(s.Transactions(), month)
		return nil

	case "budgets":
		printBudgetRows(report.BudgetAnalysis(s.Transactions(), s.Budgets(), month))
		return nil

	case "usage":
		printBudgetRows(report.BudgetUsage(s.Transactions(), s.Budgets(), month))
		return nil

	case "trend":
		printTrend(s.Transactions())
		return nil

	case "import-csv":
		if len(rest) != 1 {
			return fmt.Errorf("usage: import-csv <file>")
		}
		added, err := transfer.ImportCSV(s, rest[0], logger)
		if err != nil {
			return err
		}
		fmt.Printf("%d transaction(s) imported\n", added)
		return s.Save(ctx)

	case "export-csv":
		if len(rest) != 1 {
			return fmt.Errorf("usage: export-csv <file>")
		}
		return transfer.ExportCSV(s, rest[0])

	case "import-json":
		if len(rest) != 1 {
			return fmt.Errorf("usage: import-json <file>")
		}
		if err := transfer.ImportJSON(s, rest[0]); err != nil {
			return err
		}
		return s.Save(ctx)

	case "export-json":
		if len(rest) != 1 {
			return fmt.Errorf("usage: export-json <file>")
		}
		return transfer.ExportJSON(s, rest[0])

	case "restore":
		if len(rest) != 1 {
			return fmt.Errorf("usage: restore <file>")
		}
		if err := transfer.RestoreJSON(s, rest[0]); err != nil {
			return err
		}
		return s.Save(ctx)

	case "snapshot":
		if len(rest) != 1 {
			return fmt.Errorf("usage: snapshot <basepath>")
		}
		return snapshot(s, rest[0])

	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func addTransaction(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	date := fs.String("date", "", "transaction date (YYYY-MM-DD)")
	description := fs.String("desc", "", "description")
	category := fs.String("category", "", "category")
	amount := fs.Float64("amount", 0, "amount (magnitude)")
	typ := fs.String("type", "expense", "income or expense")
	notes := fs.String("notes", "", "notes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	parsed, err := core.ParseDate(*date)
	if err != nil {
		return err
	}
	trx := s.AddTransaction(parsed, *description, *category, *amount,
		core.ParseTransactionType(*typ), *notes)
	fmt.Println("added", trx.ID)
	return s.Save(ctx)
}

// snapshot writes both export formats side by side. The two writers only
// read the store, so they can run concurrently.
func snapshot(s *store.Store, base string) error {
	var g errgroup.Group
	g.Go(func() error { return transfer.ExportCSV(s, base+".csv") })
	g.Go(func() error { return transfer.ExportJSON(s, base+".json") })
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Printf("snapshot written to %s.csv and %s.json\n", base, base)
	return nil
}

func printTransactions(transactions []core.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT\tTYPE")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			t.ID, t.Date.ISO(), t.Description, t.Category, t.SignedAmount(), t.Type)
	}
	w.Flush()
}

func printSummary(transactions []core.Transaction, month string) {
	s := report.MonthlySummary(transactions, month)
	scope := "all months"
	if month != report.AllMonths {
		scope = core.MonthLabel(month)
	}
	fmt.Printf("%s\n  incomes:  %.2f\n  expenses: %.2f\n  balance:  %.2f\n",
		scope, s.Incomes, s.Expenses, s.Balance)
}

func printCategoryTotals(transactions []core.Transaction, month string) {
	rows := report.BudgetUsage(transactions, nil, month)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tSPENT")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.2f\n", r.Budget.Category, r.Spent)
	}
	w.Flush()
}

func printBudgetRows(rows []report.BudgetRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tLIMIT\tSPENT\tREMAINING\tUSED")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.0f%%\n",
			r.Budget.Category, r.Budget.MonthlyLimit, r.Spent, r.Remaining, r.Ratio*100)
	}
	w.Flush()
}

func printTrend(transactions []core.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tNET")
	for _, mb := range report.MonthlyBalances(transactions) {
		fmt.Fprintf(w, "%s\t%.2f\n", core.MonthLabel(mb.Month), mb.Net)
	}
	w.Flush()
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: budgetbook [-storage file] [-backend json|sqlite] <command> [args]

commands:
  add -date D -desc S -category S -amount N [-type income|expense] [-notes S]
  list [month]           list transactions (month as YYYY-MM)
  delete <id>            delete a transaction
  set-budget <cat> <n>   create a monthly budget
  summary [month]        income/expense/balance totals
  categories [month]     per-category expense totals
  budgets [month]        budget utilization
  usage [month]          budget utilization incl. unbudgeted categories
  trend                  net balance per month
  import-csv <file>      merge transactions from CSV
  export-csv <file>      write transactions as CSV (signed amounts)
  import-json <file>     append a JSON document into the store
  export-json <file>     write the full store as JSON
  restore <file>         replace the store from a JSON document
  snapshot <base>        write <base>.csv and <base>.json
  selftest               exercise the data layer
`)
}
