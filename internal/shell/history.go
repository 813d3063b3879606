package shell

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aryszka/dllist"
)

const defaultHistoryListing = 10

// Command is an entry of the shell history.
type Command struct {
	ID   int
	Time time.Time
	Args []string
}

// history keeps the executed commands, oldest first. When max is positive, the oldest entries are dropped
// above it.
type history struct {
	list *dllist.List[*Command]
	max  int
}

func newHistory(max int, log *zap.Logger) *history {
	return &history{
		list: dllist.New[*Command](dllist.Options{Logger: log}),
		max:  max,
	}
}

func (h *history) add(c *Command) error {
	if err := h.list.Append(dllist.NewPayload(c)); err != nil {
		return err
	}

	for h.max > 0 && h.list.Size() > h.max {
		if p := h.list.RemoveAt(0); p != nil {
			if err := p.Release(); err != nil {
				return err
			}
		}
	}

	return nil
}

// returns the last n entries, oldest first, walking them with the cursor of the list
func (h *history) last(n int) []*Command {
	size := h.list.Size()
	if n > size {
		n = size
	}

	if n <= 0 || !h.list.MoveCursorTo(size-n) {
		return nil
	}

	c := make([]*Command, 0, n)
	for len(c) < n && h.list.HasNext() {
		c = append(c, h.list.Next())
	}

	return c
}

func (h *history) print(w io.Writer, n int) {
	for _, c := range h.last(n) {
		fmt.Fprintf(w, "%5d  %s  %s\n", c.ID, c.Time.Format("15:04:05"), strings.Join(c.Args, " "))
	}
}

func (h *history) destroy() {
	h.list.Destroy()
}
