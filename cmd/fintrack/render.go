package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"fintrack/internal/aggregate"
	"fintrack/internal/core"
	"fintrack/internal/forecast"
	"fintrack/internal/services"
)

func renderDashboard(out io.Writer, sess *services.Session, ov services.Overview) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Welcome, %s\n\n", sess.User.Username)
	fmt.Fprintf(tw, "Total Income:\t%s\n", core.FormatAmount(ov.Summary.TotalIncome))
	fmt.Fprintf(tw, "Total Expense:\t%s\n", core.FormatAmount(ov.Summary.TotalExpense))
	fmt.Fprintf(tw, "Balance:\t%s\n", core.FormatAmount(ov.Summary.Balance))

	fmt.Fprintln(tw, "\nExpenses by category")
	if len(ov.Categories) == 0 {
		fmt.Fprintln(tw, "  no expenses yet")
	}
	for _, c := range ov.Categories {
		fmt.Fprintf(tw, "  %s\t%s\t%s%%\n", c.Name, core.FormatAmount(c.Amount),
			aggregate.Share(c.Amount, ov.Summary.TotalExpense).StringFixed(1))
	}

	fmt.Fprintln(tw, "\nRecent transactions")
	if len(ov.Recent) == 0 {
		fmt.Fprintln(tw, "  no transactions yet")
	} else {
		fmt.Fprintln(tw, "  DATE\tTYPE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	}
	for _, t := range ov.Recent {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", t.Date, t.Type, t.Category, core.FormatAmount(t.Amount), t.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return renderForecast(out, ov.Projections)
}

// renderForecast prints the projections, followed by the low-savings warning
// when the first month falls under the threshold.
func renderForecast(out io.Writer, projections []forecast.Projection) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Savings forecast")
	for _, p := range projections {
		fmt.Fprintf(tw, "  Month %d\tsaving %s\texpense %s\n", p.Period,
			core.FormatAmount(p.PredictedSaving), core.FormatAmount(p.PredictedExpense))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if forecast.IsLowSavings(forecast.Savings(projections)) {
		fmt.Fprintf(out, "\nWarning: predicted savings for next month are below %s. Consider reducing expenses.\n",
			core.FormatAmount(forecast.LowSavingsThreshold))
	}
	return nil
}
