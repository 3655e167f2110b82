package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"cardtable/internal/count"

	"github.com/sirupsen/logrus"
)

// Console drives a Counter from a line-oriented stream.
type Console struct {
	counter *count.Counter
	log     logrus.FieldLogger
}

func New(counter *count.Counter, log logrus.FieldLogger) *Console {
	return &Console{counter: counter, log: log}
}

// Run reads commands until EXIT, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "🃏 Помощник Blackjack — счёт Hi-Lo | колод: %d\n", c.counter.NumDecks())
	fmt.Fprintln(out, "Вводите карты как 10, J, A и т.д. STATUS — сводка, RESET — начать заново, EXIT — выход.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, readErr := readLines(ctx, in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, "\nКарта: ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return <-readErr
			}
			line = l
		}

		cmd, err := count.ParseCommand(line)
		if err != nil {
			c.log.WithField("input", line).Debug("rejected input")
			fmt.Fprintln(out, "❌ Неизвестная карта или команда.")
			continue
		}

		if cmd.Kind == count.CommandExit {
			return nil
		}

		if err := c.counter.Apply(cmd); err != nil {
			if errors.Is(err, count.ErrDepletedRank) {
				c.log.WithError(err).Debug("rank depleted")
				fmt.Fprintln(out, "❌ Все карты этого достоинства уже вышли.")
				continue
			}
			return err
		}

		switch cmd.Kind {
		case count.CommandCard:
			fmt.Fprintf(out, "✔️ Учтена %s\n", cmd.Rank)
			fmt.Fprintf(out, "Текущий счёт: %d, истинный счёт: %.2f\n",
				c.counter.RunningCount(), c.counter.TrueCount())
		case count.CommandReset:
			fmt.Fprintln(out, "🔄 Счёт и история сброшены.")
		case count.CommandStatus:
			WriteStatus(out, c.counter.Status())
		}
	}
}

// readLines scans in on its own goroutine so a blocked read never holds up Run.
// The error channel receives exactly one value once lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

func WriteStatus(w io.Writer, st count.Status) {
	fmt.Fprintf(w, "\n📊 Текущий счёт: %d\n", st.RunningCount)
	fmt.Fprintf(w, "📘 Истинный счёт: %.2f\n", st.TrueCount)
	fmt.Fprintf(w, "🧾 Осталось карт: %d\n", st.CardsRemaining)
	fmt.Fprintln(w, "📌 Остаток по достоинствам:")
	for _, rc := range st.Remaining {
		fmt.Fprintf(w, "  %s: %d\n", rc.Rank, rc.Remaining)
	}
}
