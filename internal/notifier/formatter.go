package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SmartWorth/internal/model"
	"SmartWorth/internal/similarity"
)

func esc(s string) string { return html.EscapeString(s) }

func scoreEmoji(score int) string {
	switch {
	case score >= 70:
		return "🟢"
	case score >= 45:
		return "🟡"
	default:
		return "🔴"
	}
}

func formatPrice(v float64) string {
	if v == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f TL", v)
}

// FormatAnalysisReport formats an analysis result as a Telegram HTML message.
func FormatAnalysisReport(r *model.AnalysisResult) string {
	var b strings.Builder
	p := r.Product

	b.WriteString(fmt.Sprintf("🛒 <b>%s</b>\n", esc(p.Name)))
	if !r.AnalyzedAt.IsZero() {
		b.WriteString(fmt.Sprintf("<i>%s</i>\n", r.AnalyzedAt.Format("2006-01-02 15:04")))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Category: %s\n", p.Category))
	b.WriteString(fmt.Sprintf("Average: %s\n", formatPrice(p.AvgPrice)))
	b.WriteString(fmt.Sprintf("Range: %s – %s\n", formatPrice(p.MinPrice), formatPrice(p.MaxPrice)))
	b.WriteString(fmt.Sprintf("Listings: %d\n\n", countListings(p.Prices)))

	b.WriteString(fmt.Sprintf("%s <b>Value score:</b> %d/100\n", scoreEmoji(r.ValueScore), r.ValueScore))
	b.WriteString(fmt.Sprintf("📈 <b>Trend:</b> %s\n", esc(r.Trend)))
	b.WriteString(fmt.Sprintf("📦 <b>Supply:</b> %s\n", r.SupplyLevel))
	b.WriteString(fmt.Sprintf("🔗 <b>Consistency:</b> %.2f%%\n", r.Consistency))
	return b.String()
}

// FormatAnalysisText formats an analysis result as plain text for the terminal.
func FormatAnalysisText(r *model.AnalysisResult) string {
	var b strings.Builder
	p := r.Product
	b.WriteString(fmt.Sprintf("Product:     %s\n", p.Name))
	b.WriteString(fmt.Sprintf("Category:    %s\n", p.Category))
	b.WriteString(fmt.Sprintf("Average:     %s\n", formatPrice(p.AvgPrice)))
	b.WriteString(fmt.Sprintf("Min / Max:   %s / %s\n", formatPrice(p.MinPrice), formatPrice(p.MaxPrice)))
	b.WriteString(fmt.Sprintf("Listings:    %d\n", countListings(p.Prices)))
	b.WriteString(fmt.Sprintf("Value score: %d/100\n", r.ValueScore))
	b.WriteString(fmt.Sprintf("Trend:       %s\n", r.Trend))
	b.WriteString(fmt.Sprintf("Supply:      %s\n", r.SupplyLevel))
	b.WriteString(fmt.Sprintf("Consistency: %.2f%%\n", r.Consistency))
	return b.String()
}

func countListings(prices []float64) int {
	n := 0
	for _, p := range prices {
		if p > 0 {
			n++
		}
	}
	return n
}

// FormatSimilar lists similar stored products.
func FormatSimilar(base string, matches []similarity.Match) string {
	if len(matches) == 0 {
		return fmt.Sprintf("No products similar to <b>%s</b> yet.", esc(base))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔍 <b>Similar to %s</b>\n\n", esc(base)))
	for i, m := range matches {
		b.WriteString(fmt.Sprintf("%d. %s (%.0f%%) score %d, avg %s\n",
			i+1, esc(m.Product.Name), m.Score*100, m.Product.ValueScore, formatPrice(m.Product.AvgPrice)))
	}
	return b.String()
}

// FormatHistory lists stored price observations.
func FormatHistory(name string, entries []model.HistoryEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("No price history for <b>%s</b>.", esc(name))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🕒 <b>Price history: %s</b>\n\n", esc(name)))
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%s  %-8s %s\n",
			e.RecordedAt.Format("2006-01-02 15:04"), e.Source, formatPrice(e.Price)))
	}
	return b.String()
}

// FormatWatchlist summarizes the tracked products.
func FormatWatchlist(items []model.TrackedProduct) string {
	if len(items) == 0 {
		return "Watchlist is empty. Use /track &lt;name&gt; to add a product."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("👀 <b>Watchlist</b> | %s\n\n", time.Now().Format("2006-01-02")))
	for _, it := range items {
		if it.LastAnalyzedAt.IsZero() {
			b.WriteString(fmt.Sprintf("• %s (not analyzed yet)\n", esc(it.Name)))
			continue
		}
		b.WriteString(fmt.Sprintf("• %s: %s %d/100, %s, avg %s\n",
			esc(it.Name), scoreEmoji(it.LastScore), it.LastScore, esc(it.LastTrend), formatPrice(it.LastAvgPrice)))
	}
	return b.String()
}

// FormatProducts lists stored products.
func FormatProducts(items []model.ProductRecord) string {
	if len(items) == 0 {
		return "No products analyzed yet."
	}
	var b strings.Builder
	b.WriteString("🗂 <b>Analyzed products</b>\n\n")
	for _, it := range items {
		b.WriteString(fmt.Sprintf("• %s [%s] %d/100, avg %s\n",
			esc(it.Name), it.Category, it.ValueScore, formatPrice(it.AvgPrice)))
	}
	return b.String()
}
