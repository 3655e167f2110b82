package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"cardtable/internal/card"
	"cardtable/internal/count"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupConsole(t *testing.T, decks int) (*Console, *count.Counter) {
	t.Helper()
	counter, err := count.New(decks)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(counter, logger), counter
}

func TestRunCountsCards(t *testing.T) {
	c, counter := setupConsole(t, 6)

	var out bytes.Buffer
	err := c.Run(context.Background(), strings.NewReader("2\n2\n10\na\nexit\n5\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, 0, counter.RunningCount())
	assert.Len(t, counter.History(), 4)
	assert.Contains(t, out.String(), "✔️ Учтена A")
	assert.Contains(t, out.String(), "Текущий счёт: 0, истинный счёт: 0.00")
}

func TestRunRejectsInput(t *testing.T) {
	c, counter := setupConsole(t, 1)

	input := "joker\nK\nK\nK\nK\nK\nSTATUS\n"
	var out bytes.Buffer
	require.NoError(t, c.Run(context.Background(), strings.NewReader(input), &out))

	assert.Equal(t, 1, strings.Count(out.String(), "❌ Неизвестная карта или команда."))
	assert.Equal(t, 1, strings.Count(out.String(), "❌ Все карты этого достоинства уже вышли."))
	assert.Equal(t, 0, counter.Remaining(card.King))
	assert.Equal(t, -4, counter.RunningCount())
	assert.Contains(t, out.String(), "🧾 Осталось карт: 48")
	assert.Contains(t, out.String(), "  K: 0\n")
}

func TestRunReset(t *testing.T) {
	c, counter := setupConsole(t, 6)

	var out bytes.Buffer
	require.NoError(t, c.Run(context.Background(), strings.NewReader("3\n4\nreset\n"), &out))

	assert.Equal(t, 0, counter.RunningCount())
	assert.Equal(t, 312, counter.CardsRemaining())
	assert.Contains(t, out.String(), "🔄 Счёт и история сброшены.")
}

func TestRunCancelled(t *testing.T) {
	c, counter := setupConsole(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, strings.NewReader("5\n"), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, counter.RunningCount())
}

func TestRunCancelledWhileWaitingForInput(t *testing.T) {
	c, _ := setupConsole(t, 1)

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Run(ctx, pr, io.Discard)
	}()

	_, err := pw.Write([]byte("5\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunPrintsTrueCountLikeStatus(t *testing.T) {
	c, _ := setupConsole(t, 2)

	var out bytes.Buffer
	input := "2\n3\n4\n7\n8\n9\n7\n8\nstatus\n"
	require.NoError(t, c.Run(context.Background(), strings.NewReader(input), &out))

	assert.Contains(t, out.String(), "Текущий счёт: 3, истинный счёт: 1.62")
	assert.Contains(t, out.String(), "📘 Истинный счёт: 1.62")
}

func TestWriteStatusOrder(t *testing.T) {
	counter, err := count.New(1)
	require.NoError(t, err)

	var out bytes.Buffer
	WriteStatus(&out, counter.Status())

	s := out.String()
	assert.Less(t, strings.Index(s, "  9: 4"), strings.Index(s, "  10: 4"))
	assert.Less(t, strings.Index(s, "  10: 4"), strings.Index(s, "  A: 4"))
	assert.Less(t, strings.Index(s, "  K: 4"), strings.Index(s, "  Q: 4"))
}
