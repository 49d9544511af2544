package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cardtable-server/pkg/blackjack"
	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/poker/holdem"
	"cardtable-server/pkg/roulette"
	"github.com/pterm/pterm"
)

var errQuit = errors.New("quit")

// usageError is returned when a typed command can't be understood
type usageError string

func (u usageError) Error() string {
	return string(u)
}

const actionQuit = "quit"

// input reads the player's next move
// A terminal gets interactive menus, anything else is read a line at a time
type input struct {
	reader      *bufio.Reader
	interactive bool
}

func (i *input) next(state interface{}) (*playable.PayloadIn, error) {
	if !i.interactive {
		line, err := i.reader.ReadString('\n')
		if err != nil && line == "" {
			return nil, err
		}

		return parseCommand(line)
	}

	action, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Select your next action").
		WithOptions(availableOptions(state)).
		Show()
	if err != nil {
		return nil, err
	}

	msg := &playable.PayloadIn{Action: playable.Action(action), AdditionalData: playable.AdditionalData{}}
	switch msg.Action {
	case actionQuit:
		return nil, errQuit
	case playable.ActionDeal:
		amount, err := i.amount(state)
		if err != nil {
			return nil, err
		}

		msg.AdditionalData["amount"] = amount
	case playable.ActionBet:
		target, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Bet on").
			WithOptions(append(append([]string{}, roulette.OutsideTargets...), "number")).
			Show()
		if err != nil {
			return nil, err
		}

		if target == "number" {
			if target, err = pterm.DefaultInteractiveTextInput.WithDefaultText("Pocket").Show(); err != nil {
				return nil, err
			}
		}

		amount, err := i.amount(state)
		if err != nil {
			return nil, err
		}

		msg.AdditionalData["target"] = strings.TrimSpace(target)
		msg.AdditionalData["amount"] = amount
	}

	return msg, nil
}

func (i *input) amount(state interface{}) (int, error) {
	options := make([]string, 0)
	for _, preset := range betPresets(state) {
		options = append(options, strconv.Itoa(preset))
	}

	choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Amount").WithOptions(options).Show()
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(choice)
}

// parseCommand turns a line such as "deal 10" or "bet red 25" into a payload
func parseCommand(line string) (*playable.PayloadIn, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, usageError("enter an action")
	}

	msg := &playable.PayloadIn{Action: playable.Action(fields[0]), AdditionalData: playable.AdditionalData{}}
	switch msg.Action {
	case actionQuit:
		return nil, errQuit
	case playable.ActionDeal:
		if len(fields) != 2 {
			return nil, usageError("usage: deal <amount>")
		}

		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, usageError(fmt.Sprintf("invalid amount: %s", fields[1]))
		}

		msg.AdditionalData["amount"] = amount
	case playable.ActionBet:
		if len(fields) != 3 {
			return nil, usageError("usage: bet <target> <amount>")
		}

		amount, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, usageError(fmt.Sprintf("invalid amount: %s", fields[2]))
		}

		msg.AdditionalData["target"] = fields[1]
		msg.AdditionalData["amount"] = amount
	default:
		if len(fields) > 1 {
			msg.Subject = fields[1]
		}
	}

	return msg, nil
}

func availableOptions(state interface{}) []string {
	var actions []playable.Action

	switch s := state.(type) {
	case *blackjack.State:
		actions = s.AvailableActions
	case *holdem.State:
		actions = s.AvailableActions
	case *roulette.State:
		actions = []playable.Action{playable.ActionBet}
		if s.Staked > 0 {
			actions = append(actions, playable.ActionSpin, playable.ActionClear)
		}

		actions = append(actions, playable.ActionRestart)
	}

	options := make([]string, 0, len(actions)+1)
	for _, action := range actions {
		options = append(options, string(action))
	}

	return append(options, actionQuit)
}

func betPresets(state interface{}) []int {
	switch s := state.(type) {
	case *blackjack.State:
		return s.BetPresets
	case *holdem.State:
		return s.BetPresets
	case *roulette.State:
		return s.BetPresets
	}

	return nil
}
