package main

import (
	"fmt"
	"strconv"
	"strings"

	"cardtable-server/pkg/blackjack"
	"cardtable-server/pkg/deck"
	"cardtable-server/pkg/ledger"
	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/poker/holdem"
	"cardtable-server/pkg/roulette"
	"github.com/pterm/pterm"
)

func render(state interface{}) {
	switch s := state.(type) {
	case *blackjack.State:
		renderBlackjack(s)
	case *holdem.State:
		renderHoldem(s)
	case *roulette.State:
		renderRoulette(s)
	default:
		pterm.Warning.Printfln("cannot render %T", state)
	}
}

func box(title string, body string) pterm.Panel {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	return pterm.Panel{Data: pbox.WithTitle(title).WithTitleTopLeft().Sprint(body)}
}

// cardString returns the card in its suit color, or a placeholder for a hidden card
func cardString(c *deck.Card) string {
	if c == nil {
		return pterm.Gray("??")
	}

	if c.Suit.IsRed() {
		return pterm.LightRed(c.String())
	}

	return c.String()
}

func handString(h deck.Hand) string {
	cards := make([]string, len(h))
	for i, c := range h {
		cards[i] = cardString(c)
	}

	return strings.Join(cards, " ")
}

func balancePanel(balance int, stats ledger.Stats) pterm.Panel {
	return box("Chips", fmt.Sprintf("Balance: $%d\nWins: %d  Losses: %d  Pushes: %d", balance, stats.Wins, stats.Losses, stats.Pushes))
}

func renderBlackjack(s *blackjack.State) {
	dealerScore := "?"
	if s.Dealer.Score != nil {
		dealerScore = s.Dealer.Score.String()
	}

	row := []pterm.Panel{box("Dealer", fmt.Sprintf("%s\n%s", handString(s.Dealer.Cards), dealerScore))}
	for i, h := range s.Hands {
		title := fmt.Sprintf("Hand %d ($%d)", i+1, h.Bet)
		if s.Phase == playable.PhasePlayerTurn && i == s.HandIndex {
			title = pterm.LightCyan(title)
		}

		row = append(row, box(title, fmt.Sprintf("%s\n%s", handString(h.Cards), h.Score.String())))
	}

	_ = pterm.DefaultPanel.WithPanels(pterm.Panels{
		row,
		{balancePanel(s.Balance, s.Stats), box("Shoe", fmt.Sprintf("%d cards left\nBlackjacks: %d", s.CardsLeft, s.Stats.Blackjacks))},
	}).Render()

	if s.LastResult != nil && s.Phase == playable.PhaseSettlement {
		printResult(s.LastResult.Net, s.LastResult.Message)
	}
}

func renderHoldem(s *holdem.State) {
	var seats []pterm.Panel
	for _, seat := range s.Seats {
		status := pterm.LightGreen("Active")
		if seat.Folded {
			status = pterm.LightRed("Folded")
		}

		body := fmt.Sprintf("%s\n%s", handString(seat.Hole), status)
		if seat.Hand != "" {
			body += "\n" + seat.Hand
		}

		seats = append(seats, box(seat.Name, body))
	}

	board := pterm.DefaultHeader.WithBackgroundStyle(pterm.BgGreen.ToStyle()).
		Sprintf("%s  Pot: $%d  (%s)", handString(s.Board), s.Pot, s.Street)

	_ = pterm.DefaultPanel.WithPanels(pterm.Panels{
		seats,
		{{Data: board}},
		{balancePanel(s.Balance, s.Stats)},
	}).Render()

	if s.LastResult != nil && s.Phase == playable.PhaseSettlement {
		printResult(s.LastResult.Net, s.LastResult.Message)
	}
}

func renderRoulette(s *roulette.State) {
	data := pterm.TableData{{"Target", "Amount"}}
	for _, w := range s.Wagers {
		data = append(data, []string{w.Target, strconv.Itoa(w.Amount)})
	}

	history := make([]string, len(s.History))
	for i, p := range s.History {
		history[i] = pocketString(p)
	}

	_ = pterm.DefaultPanel.WithPanels(pterm.Panels{
		{balancePanel(s.Balance, s.Stats), box("History", strings.Join(history, " "))},
	}).Render()

	if len(s.Wagers) > 0 {
		_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}

	if s.LastResult != nil && s.Phase == playable.PhaseSettlement {
		printResult(s.LastResult.Net, fmt.Sprintf("The ball landed on %s. Net $%d", pocketString(s.LastResult.Pocket), s.LastResult.Net))
	}
}

func pocketString(p roulette.Pocket) string {
	switch p.Color() {
	case roulette.Red:
		return pterm.LightRed(p.String())
	case roulette.Green:
		return pterm.LightGreen(p.String())
	}

	return p.String()
}

func printResult(net int, message string) {
	switch {
	case net > 0:
		pterm.Success.Println(message)
	case net < 0:
		pterm.Error.Println(message)
	default:
		pterm.Info.Println(message)
	}
}
