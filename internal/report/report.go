// Package report renders patrimony figures for people: currency formatting,
// a markdown breakdown table and its HTML rendering.
package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Tafita-R/Examen-Web2/internal/valuation"
)

// FormatAmount formats value in the given ISO 4217 currency, rounded to the
// currency's minor unit. FormatAmount(decimal.NewFromInt(1000), "USD") is "$1,000.00".
func FormatAmount(value decimal.Decimal, currency string) string {
	// money.New is the only way to get a non-nil currency for a code.
	cur := money.New(0, currency).Currency()
	minor := value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Markdown renders a breakdown as a markdown document: a heading, one table row per
// possession and the total.
func Markdown(b valuation.Breakdown, owner, currency string) string {
	var sb strings.Builder

	title := "Patrimony"
	if owner != "" {
		title += " of " + owner
	}
	fmt.Fprintf(&sb, "# %s on %s\n\n", title, b.Date)

	if len(b.Items) == 0 {
		sb.WriteString("No possessions.\n\n")
	} else {
		sb.WriteString("| Possession | Owner | Mode | Value | Status |\n")
		sb.WriteString("|:---|:---|:---|---:|:---|\n")
		for _, item := range b.Items {
			status := "active"
			if !item.Active {
				status = "closed"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				escape(item.Label), escape(item.Owner), item.Mode, FormatAmount(item.Value, currency), status)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "**Total: %s**\n", FormatAmount(b.Total, currency))
	return sb.String()
}

// escape keeps user text from breaking the table layout.
func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts a markdown document to an HTML fragment. Tables are rendered with
// the GitHub flavoured markdown extension.
func HTML(md string) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Page wraps an HTML fragment into a standalone document.
func Page(title string, body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	buf.WriteString(html.EscapeString(title))
	buf.WriteString("</title>\n</head>\n<body>\n")
	buf.Write(body)
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
