// Package report renders aggregated numbers and classification outcomes into
// the user-facing Spanish messages. It holds no business logic; field order,
// iconography and fallback texts are observable contract.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"finbot/internal/aggregate"
	"finbot/internal/core"
)

const (
	// Fallback is the fixed reply for any classification that could not be
	// processed.
	Fallback = "Lo siento, no pudimos procesar ese mensaje. Por favor intenta de nuevo."

	// InvalidAmount is the corrective reply for a manual command whose
	// amount is missing, non-numeric or not positive.
	InvalidAmount = "❌ Por favor proporciona un monto válido y positivo."

	dayLayout = "2006-01-02"
)

// Welcome renders the /start greeting.
func Welcome() string {
	return "🚀 ¡Bienvenido al Bot de Seguimiento Financiero!\n\n" +
		"Puedo ayudarte a rastrear tus ingresos y gastos. Esto es lo que puedo hacer:\n\n" +
		"📊 Rastrear gastos e ingresos\n💰 Establecer presupuestos y metas financieras\n" +
		"📈 Generar reportes financieros\n🤖 Consejos financieros con IA\n\n" +
		"Usa /help para ver todos los comandos disponibles."
}

// Help renders the /help command list.
func Help() string {
	return `📋 Comandos Disponibles:

/start - Iniciar el bot y ver mensaje de bienvenida
/help - Mostrar este mensaje de ayuda
/expense <monto> <descripción> - Agregar un gasto
/income <monto> <descripción> - Agregar ingreso
/balance - Verificar balance actual
/report - Generar reporte financiero

¡Más funciones próximamente! 🚀`
}

// TypeSummary renders the weekly and monthly sums for one transaction type.
func TypeSummary(typ core.TransactionType, s aggregate.Summary, ref time.Time) string {
	title, empty := "💰 Resumen de Ingresos", "- No income records this week"
	if typ == core.TypeExpense {
		title, empty = "💸 Resumen de Gastos", "- No expense records this week"
	}

	lines := empty
	if len(s.WeeklyItems) > 0 {
		var b strings.Builder
		for i, t := range s.WeeklyItems {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "- $%s • %s (%s)", t.Amount.StringFixed(2), t.Category, t.Date.Format(dayLayout))
		}
		lines = b.String()
	}

	return fmt.Sprintf("%s\n\n🗓️ Esta Semana (%s → %s): $%s\n%s\n\n📅 Este Mes (%s): $%s",
		title,
		s.WeekStart.Format(dayLayout), s.WeekEnd.Format(dayLayout), s.WeeklyTotal.StringFixed(2),
		lines,
		monthLabel(ref), s.MonthlyTotal.StringFixed(2))
}

// BalanceSummary renders weekly and monthly income, expense and balance.
func BalanceSummary(b aggregate.BalanceSummary, ref time.Time) string {
	return fmt.Sprintf("💳 Resumen de Balance\n\n"+
		"🗓️ Esta Semana (%s → %s)\n- Ingresos: $%s\n- Gastos: $%s\n- Balance: $%s\n\n"+
		"📅 Este Mes (%s)\n- Ingresos: $%s\n- Gastos: $%s\n- Balance: $%s",
		b.WeekStart.Format(dayLayout), b.WeekEnd.Format(dayLayout),
		b.Week.Income.StringFixed(2), b.Week.Expense.StringFixed(2), b.Week.Balance.StringFixed(2),
		monthLabel(ref),
		b.Month.Income.StringFixed(2), b.Month.Expense.StringFixed(2), b.Month.Balance.StringFixed(2))
}

// FullReport renders all-time totals plus the most recent transactions.
func FullReport(totals aggregate.Totals, recent []core.Transaction) string {
	lines := "- No se han registrado transacciones aún"
	if len(recent) > 0 {
		var b strings.Builder
		for i, t := range recent {
			if i > 0 {
				b.WriteByte('\n')
			}
			emoji := "💸"
			if t.Type == core.TypeIncome {
				emoji = "💰"
			}
			date := ""
			if t.HasDate {
				date = t.Date.Format(dayLayout)
			}
			fmt.Fprintf(&b, "%s $%s - %s (%s)", emoji, t.Amount.StringFixed(2), t.Category, date)
		}
		lines = b.String()
	}

	return fmt.Sprintf(`📊 Reporte Financiero

💰 Balance Actual: $%s
📈 Total de Ingresos: $%s
📉 Total de Gastos: $%s

📋 Transacciones Recientes:
%s

💡 ¡Usa los comandos /expense, /income o /balance para comenzar a rastrear tus finanzas!`,
		totals.Balance.StringFixed(2), totals.Income.StringFixed(2), totals.Expense.StringFixed(2), lines)
}

// FinancialAck renders the confirmation for a classified transaction. The
// status icon depends on whether the ledger forward succeeded.
func FinancialAck(typ core.TransactionType, amount decimal.Decimal, category, date string, saved bool) string {
	emoji, label := "💸", "Gasto"
	if typ == core.TypeIncome {
		emoji, label = "💰", "Ingreso"
	}
	status, statusEmoji := "registrado (no guardado)", "⚠️"
	if saved {
		status, statusEmoji = "guardado", "✅"
	}
	return fmt.Sprintf("%s %s %s: $%s - %s (%s) %s",
		emoji, label, status, amount.StringFixed(2), category, date, statusEmoji)
}

// RecordAck acknowledges a manual /expense or /income entry.
func RecordAck(typ core.TransactionType, amount decimal.Decimal, description string) string {
	if typ == core.TypeIncome {
		return fmt.Sprintf("💰 Ingreso registrado: $%s - %s", amount.StringFixed(2), description)
	}
	return fmt.Sprintf("💸 Gasto registrado: $%s - %s", amount.StringFixed(2), description)
}

// ZeroedStatsReport is the reply to a plain-text statistics request. The
// original system never wired this branch to the aggregator and always
// answered with this fixed all-zero report, odd indentation included; that
// behavior is reproduced literally.
func ZeroedStatsReport() string {
	return `📊 Reporte Financiero

                💰 Balance Actual: $0.00
                📈 Total de Ingresos: $0.00
                📉 Total de Gastos: $0.00

                📋 Transacciones Recientes:
                - No se han registrado transacciones aún

                💡 ¡Usa los comandos /expense o /income para comenzar a rastrear tus finanzas!`
}

func monthLabel(ref time.Time) string {
	y, m, _ := ref.Date()
	return fmt.Sprintf("%d-%02d", y, int(m))
}
