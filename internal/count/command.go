package count

import (
	"errors"
	"fmt"
	"strings"

	"cardtable/internal/card"
)

var ErrUnknownInput = errors.New("unrecognized input")

type CommandKind int

const (
	CommandCard CommandKind = iota
	CommandStatus
	CommandReset
	CommandExit
)

type Command struct {
	Kind CommandKind
	Rank card.Rank
}

// ParseCommand recognises STATUS, RESET, EXIT and rank tokens, case-insensitively.
func ParseCommand(line string) (Command, error) {
	token := strings.ToUpper(strings.TrimSpace(line))

	switch token {
	case "STATUS":
		return Command{Kind: CommandStatus}, nil
	case "RESET":
		return Command{Kind: CommandReset}, nil
	case "EXIT":
		return Command{Kind: CommandExit}, nil
	}

	r, err := card.ParseRank(token)
	if err != nil {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownInput, strings.TrimSpace(line))
	}
	return Command{Kind: CommandCard, Rank: r}, nil
}

// Apply runs a card, status or reset command against the counter.
// Exit is left to the caller.
func (c *Counter) Apply(cmd Command) error {
	switch cmd.Kind {
	case CommandCard:
		return c.Observe(cmd.Rank)
	case CommandReset:
		c.Reset()
	}
	return nil
}
