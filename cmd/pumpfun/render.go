// cmd/pumpfun/render.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rovshanmuradov/pumpfun-sdk/internal/monitor"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/pricing"
	"github.com/rovshanmuradov/pumpfun-sdk/pkg/pumpfun/units"
)

var (
	cyan    = lipgloss.Color("#00E5FF")
	magenta = lipgloss.Color("#FF1B6B")
	yellow  = lipgloss.Color("#FFB500")
	green   = lipgloss.Color("#2AFFAA")
	red     = lipgloss.Color("#FF5555")
	muted   = lipgloss.Color("#6C7280")
)

type styles struct {
	Box     lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(magenta).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(cyan).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(muted),
		Value: lipgloss.NewStyle().
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(green).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(red).
			Bold(true),
	}
}

var style = defaultStyles()

type row struct {
	label string
	value string
}

func renderRows(title string, rows []row) string {
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}

	lines := []string{style.Title.Render(title), ""}
	for _, r := range rows {
		label := style.Label.Render(r.label + strings.Repeat(" ", width-len(r.label)))
		lines = append(lines, label+"  "+style.Value.Render(r.value))
	}
	return style.Box.Render(strings.Join(lines, "\n"))
}

func formatSol(lamports uint64) string {
	return units.LamportsToSol(lamports).String() + " SOL"
}

func formatTokens(raw uint64) string {
	return units.TokensToUI(raw).String()
}

func formatBps(bps uint64) string {
	return fmt.Sprintf("%s%%", units.FromRaw(bps, 2).String())
}

func curveRows(state pumpfun.MarketState) []row {
	curve := state.Curve
	rows := []row{
		{"bonding curve", state.BondingCurve.String()},
		{"virtual SOL", formatSol(curve.VirtualSolReserves)},
		{"virtual tokens", formatTokens(curve.VirtualTokenReserves)},
		{"real SOL", formatSol(curve.RealSolReserves)},
		{"real tokens", formatTokens(curve.RealTokenReserves)},
		{"total supply", formatTokens(curve.TokenTotalSupply)},
		{"fee", formatBps(state.Global.FeeBasisPoints)},
	}

	if curve.Complete {
		return append(rows, row{"status", style.Warning.Render("complete, trading moved off the curve")})
	}
	if price, err := pricing.SpotPrice(curve); err == nil {
		rows = append(rows, row{"price per token", formatSol(price)})
	}
	if mcap, err := pricing.MarketCapSol(curve); err == nil {
		rows = append(rows, row{"market cap", formatSol(mcap)})
	}
	if final, err := pricing.FinalMarketCapSol(curve, state.Global.FeeBasisPoints); err == nil {
		rows = append(rows, row{"market cap at completion", formatSol(final)})
	}
	if initial := state.Global.InitialRealTokenReserves; initial > 0 && curve.RealTokenReserves <= initial {
		sold := units.FromRaw(initial-curve.RealTokenReserves, units.TokenDecimals)
		total := units.FromRaw(initial, units.TokenDecimals)
		progress := sold.Mul(decimal.NewFromInt(100)).DivRound(total, 2)
		rows = append(rows, row{"progress", progress.String() + "%"})
	}
	return append(rows, row{"status", style.Success.Render("trading")})
}

func buyQuoteRows(q pricing.BuyQuote) []row {
	return []row{
		{"spend", formatSol(q.SolAmount)},
		{"fee", formatSol(q.Fee)},
		{"tokens out", formatTokens(q.TokenAmount)},
		{"max SOL cost", formatSol(q.MaxSolCost)},
	}
}

func sellQuoteRows(q pricing.SellQuote) []row {
	return []row{
		{"sell", formatTokens(q.TokenAmount)},
		{"gross SOL", formatSol(q.GrossSol)},
		{"fee", formatSol(q.Fee)},
		{"net SOL", formatSol(q.NetSol)},
		{"min SOL output", formatSol(q.MinSolOutput)},
	}
}

func tradeRows(res pumpfun.TradeResult, buy bool) []row {
	rows := []row{
		{"signature", res.Signature.String()},
		{"mint", res.Mint.String()},
		{"tokens", formatTokens(res.TokenAmount)},
	}
	if buy {
		rows = append(rows, row{"spent", formatSol(res.SolAmount)}, row{"max SOL cost", formatSol(res.SolLimit)})
	} else {
		rows = append(rows, row{"expected", formatSol(res.SolAmount)}, row{"min SOL output", formatSol(res.SolLimit)})
	}
	rows = append(rows, row{"fee", formatSol(res.Fee)})
	return append(rows, confirmationRow(res.Confirmed))
}

func createRows(res pumpfun.CreateResult) []row {
	rows := []row{
		{"signature", res.Signature.String()},
		{"mint", res.Mint.String()},
		{"bonding curve", res.BondingCurve.String()},
		{"metadata", res.MetadataURI},
	}
	if res.InitialBuy != nil {
		rows = append(rows,
			row{"dev buy", formatSol(res.InitialBuy.SolAmount)},
			row{"dev tokens", formatTokens(res.InitialBuy.TokenAmount)})
	}
	return append(rows, confirmationRow(res.Confirmed))
}

func confirmationRow(confirmed bool) row {
	if confirmed {
		return row{"status", style.Success.Render("confirmed")}
	}
	return row{"status", style.Warning.Render("sent")}
}

func watchLine(u monitor.Update) string {
	change := u.PercentChange.StringFixed(2) + "%"
	switch u.PercentChange.Sign() {
	case 1:
		change = style.Success.Render("+" + change)
	case -1:
		change = style.Error.Render(change)
	default:
		change = style.Label.Render(change)
	}

	line := fmt.Sprintf("%s  mcap %s  %s  real SOL %s",
		style.Label.Render(u.At.Format(time.TimeOnly)),
		style.Value.Render(formatSol(u.MarketCap)),
		change,
		formatSol(u.State.Curve.RealSolReserves))
	if u.State.Curve.Complete {
		line += "  " + style.Warning.Render("complete")
	}
	return line
}
