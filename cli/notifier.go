package cli

import (
	"fmt"
	"io"

	"github.com/nathoo/questmgr/types"
)

// Notifier prints player notifications as they are raised.
type Notifier struct {
	out    io.Writer
	styles styles
	seen   map[string]int
}

// NewNotifier creates a Notifier writing to out.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{
		out:    out,
		styles: newStyles(out),
		seen:   map[string]int{},
	}
}

// Notify prints the notification.
func (n *Notifier) Notify(note types.Notification) {
	n.seen[note.Tag]++
	fmt.Fprintln(n.out, n.styles.notice.Render(fmt.Sprintf("(!) %s: %s", note.Title, note.Body)))
}

// Count returns how many notifications carried the tag.
func (n *Notifier) Count(tag string) int {
	return n.seen[tag]
}
