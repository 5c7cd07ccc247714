package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"companycrm/internal/company"
	"companycrm/internal/logger"
	"companycrm/internal/render"
	"companycrm/internal/search"
	"companycrm/internal/searchclient"
	"companycrm/internal/validator"
)

// demoPriceSeries is shown in demo mode for companies without price history.
var demoPriceSeries = []company.PricePoint{
	{Name: "Q1", Price: 10},
	{Name: "Q2", Price: 12},
	{Name: "Q3", Price: 11},
	{Name: "Q4", Price: 14},
}

type options struct {
	backendURL string
	timeout    time.Duration
	demo       bool
	asTable    bool
}

func (o *options) client() *searchclient.Client {
	return searchclient.NewClient(o.backendURL, &http.Client{Timeout: o.timeout})
}

func (o *options) assembler() *company.Assembler {
	a := company.NewAssembler(logger.Diagnostics())
	if o.demo {
		a.PriceFallback = demoPriceSeries
	}
	return a
}

func (o *options) list(views []company.CompanyViewModel) string {
	if o.asTable {
		return render.Table(views)
	}
	return render.Cards(views)
}

func newSearchCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Semantic search for companies",
		Example: `  companyctl search "payments infrastructure in southeast asia"
  companyctl search fintech --limit 10 --table`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := search.NewSession(opts.client(), opts.assembler())
			result, err := session.Search(cmd.Context(), strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.list(result.Companies))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of results")
	return cmd
}

func newAdvancedCmd(opts *options) *cobra.Command {
	var filters searchclient.Filters

	cmd := &cobra.Command{
		Use:     "advanced",
		Short:   "Filtered search; only companies matching every filter are shown",
		Example: `  companyctl advanced --sector Fintech --valuation '$1B' --table`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filters.IsEmpty() {
				return errors.New("at least one filter is required")
			}
			warnUnreadableMoney(cmd.ErrOrStderr(), filters)
			session := search.NewSession(opts.client(), opts.assembler())
			result, err := session.AdvancedSearch(cmd.Context(), filters)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.list(result.Companies))
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Name, "name", "", "Name (partial match)")
	cmd.Flags().StringVar(&filters.Sector, "sector", "", "Exact sector")
	cmd.Flags().StringVar(&filters.Valuation, "valuation", "", "Minimum valuation, e.g. $500M")
	cmd.Flags().StringVar(&filters.Website, "website", "", "Website (partial match)")
	cmd.Flags().StringVar(&filters.Investors, "investors", "", "Investors (partial match)")
	cmd.Flags().StringVar(&filters.TotalFunding, "total-funding", "", "Minimum total funding, e.g. 1.2B")
	cmd.Flags().StringVar(&filters.SinarmasInterest, "sinarmas-interest", "", "Sinarmas interest")
	cmd.Flags().StringVar(&filters.ShareTransferAllowed, "share-transfer-allowed", "", "Share transfer policy, e.g. Yes")
	return cmd
}

// warnUnreadableMoney notes money filters the backend will ignore because
// they carry no "<number> M|B" amount. The filters are still sent.
func warnUnreadableMoney(w io.Writer, f searchclient.Filters) {
	for _, m := range []struct{ flag, value string }{
		{"--valuation", f.Valuation},
		{"--total-funding", f.TotalFunding},
	} {
		if m.value == "" {
			continue
		}
		if _, ok := validator.MoneyThreshold(m.value); !ok {
			fmt.Fprintf(w, "warning: %s %q has no amount like 500M or 1.2B; the backend will ignore it\n", m.flag, m.value)
		}
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "show <name> [name...]",
		Short:   "Show the full detail view of one or more companies",
		Example: `  companyctl show Stripe "Canva"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := fetchDetails(cmd.Context(), opts.client(), opts.assembler(), args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(details, "\n"))
			return nil
		},
	}
}

// fetchDetails looks every name up concurrently and renders the detail views
// in argument order.
func fetchDetails(ctx context.Context, backend search.Backend, assembler *company.Assembler, names []string) ([]string, error) {
	details := make([]string, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			records, err := backend.AdvancedSearch(ctx, searchclient.Filters{Name: name})
			if err != nil {
				return err
			}
			record, ok := pickByName(records, name)
			if !ok {
				details[i] = fmt.Sprintf("No company named %q.", name)
				return nil
			}
			details[i] = render.Detail(assembler.Assemble(record))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

// pickByName prefers an exact case-insensitive name match over the first
// partial match.
func pickByName(records []company.CompanyRecord, name string) (company.CompanyRecord, bool) {
	for _, r := range records {
		if r.Name != nil && strings.EqualFold(strings.TrimSpace(*r.Name), strings.TrimSpace(name)) {
			return r, true
		}
	}
	if len(records) > 0 {
		return records[0], true
	}
	return company.CompanyRecord{}, false
}

func newInteractiveCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Search as you type; each line starts a new search",
		Long: `Read queries line by line. Every line starts a search immediately; when a
newer query is entered before an older one answers, the older results are
never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := search.NewSession(opts.client(), opts.assembler())
			return runInteractive(cmd.Context(), session, limit, cmd.InOrStdin(), cmd.OutOrStdout(), opts.list)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of results per query")
	return cmd
}

// runInteractive starts one search per input line without waiting for the
// previous one and prints only results that are still current when they
// arrive.
func runInteractive(ctx context.Context, session *search.Session, limit int, in io.Reader, out io.Writer, list func([]company.CompanyViewModel) string) error {
	if limit <= 0 {
		limit = 5
	}

	var mu sync.Mutex
	emit := func(s string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, s)
	}

	var g errgroup.Group
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		pending := session.SearchAsync(ctx, query, limit)
		g.Go(func() error {
			outcome := <-pending
			switch {
			case errors.Is(outcome.Err, search.ErrStale):
				return nil
			case outcome.Err != nil:
				emit(fmt.Sprintf("search %q: %v", query, outcome.Err))
				return nil
			}
			emit(fmt.Sprintf("Results for %q:\n%s", outcome.Result.Query, list(outcome.Result.Companies)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return scanner.Err()
}
