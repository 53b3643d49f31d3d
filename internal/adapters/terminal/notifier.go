// Package terminal renders notifications on a terminal.
package terminal

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/example/formbuilder/internal/ports/secondary"
)

// Notifier implements secondary.Notifier by printing colored lines.
type Notifier struct {
	mu      sync.Mutex
	out     io.Writer
	success *color.Color
	danger  *color.Color
}

// NewNotifier creates a Notifier writing to out.
func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{
		out:     out,
		success: color.New(color.FgGreen),
		danger:  color.New(color.FgRed, color.Bold),
	}
}

// Success prints a success notification.
func (n *Notifier) Success(message string) {
	n.print(n.success, "✓", message)
}

// Danger prints a failure notification.
func (n *Notifier) Danger(message string) {
	n.print(n.danger, "✗", message)
}

func (n *Notifier) print(c *color.Color, mark, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, c.Sprintf("%s %s", mark, message))
}

// Ensure Notifier implements the interface
var _ secondary.Notifier = (*Notifier)(nil)
