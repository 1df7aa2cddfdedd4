package report

import (
	"bufio"
	"io"
	"strings"

	"fintrack/internal/core"
)

var (
	heavyRule = strings.Repeat("=", 50)
	lightRule = strings.Repeat("-", 40)
)

// RenderText writes the plain-text preview of r.
func RenderText(w io.Writer, r Report) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(r.Title() + "\n")
	bw.WriteString("User: " + r.Username + "\n")
	bw.WriteString(heavyRule + "\n\n")

	for _, item := range r.Items {
		description := item.Description
		if strings.TrimSpace(description) == "" {
			description = core.NoDescription
		}
		bw.WriteString("Date: " + item.Date.String() + "\n")
		bw.WriteString("Category: " + item.Category + "\n")
		bw.WriteString("Type: " + string(item.Type) + "\n")
		bw.WriteString("Amount: " + core.FormatAmount(item.Amount) + "\n")
		bw.WriteString("Description: " + description + "\n")
		bw.WriteString(lightRule + "\n")
	}

	bw.WriteString("\n" + heavyRule + "\n")
	bw.WriteString("Total Income: " + core.FormatAmount(r.Summary.TotalIncome) + "\n")
	bw.WriteString("Total Expense: " + core.FormatAmount(r.Summary.TotalExpense) + "\n")
	bw.WriteString("Net Savings: " + core.FormatAmount(r.Summary.Balance) + "\n")

	return bw.Flush()
}
