package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nisarga403/Family-FinanceFlow/internal/domain"
)

func tipPrompt(summary SpendingSummary) string {
	var b strings.Builder
	b.WriteString("You are a concise personal finance coach for a family budgeting app.\n")
	b.WriteString("Based on the spending summary below, give ONE short, specific, actionable saving tip.\n")
	b.WriteString("Answer in 2-3 sentences of plain text. No markdown, no lists, no preamble.\n\n")
	fmt.Fprintf(&b, "Total spent in the last 30 days: %s\n", summary.TotalExpenses.StringFixed(2))
	b.WriteString("Spending by category:\n")
	for _, c := range summary.Breakdown {
		fmt.Fprintf(&b, "- %s: %s\n", c.Category, c.Amount.StringFixed(2))
	}
	return b.String()
}

func dreamPlanPrompt(dream string) string {
	return "A user of a family finance app describes a dream they want to save for:\n\n" +
		"\"" + dream + "\"\n\n" +
		"Create a realistic financial plan to achieve it. Steps must be concrete " +
		"money actions (save, cut, earn), 3 to 5 of them. estimatedCost is the " +
		"total amount of money needed, as a number."
}

func dreamImagePrompt(dream string) string {
	return "An inspiring, photorealistic visualization of this dream: " + dream +
		". Warm light, hopeful mood, no text or watermarks."
}

// chatSystemPrompt confines the assistant to the data it was handed; the
// snapshot context is serialized JSON, not free text, so the model cannot
// confuse instructions with data.
func chatSystemPrompt(snapshot domain.Snapshot) string {
	totals := domain.SummarizeTransactions(snapshot.Transactions)
	ctx := map[string]any{
		"totalIncome":       totals.TotalIncome,
		"totalExpenses":     totals.TotalExpenses,
		"balance":           totals.Balance,
		"budgets":           snapshot.Budgets,
		"goals":             snapshot.Goals,
		"recurringPayments": snapshot.RecurringPayments,
		"transactions":      tail(snapshot.Transactions, 50),
	}
	data, _ := json.Marshal(ctx)

	return "You are a friendly financial assistant inside a family finance app.\n" +
		"Answer questions about the user's finances using ONLY the JSON data below.\n" +
		"If the answer is not in the data, say you don't have that information.\n" +
		"Never invent transactions, amounts or dates. Keep answers short.\n\n" +
		"DATA:\n" + string(data)
}

func videoStoryPrompt(prompt string) string {
	return "A short, uplifting cinematic clip telling this story: " + prompt +
		". Smooth camera motion, warm colors."
}

func tail(txs []domain.Transaction, n int) []domain.Transaction {
	if len(txs) <= n {
		return txs
	}
	return txs[:n]
}
