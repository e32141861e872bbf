// Package cli provides a line-oriented harness that drives the quest
// manager from a terminal or a script: game events, quest commands and
// save slots.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/questmgr/engine/manager"
	"github.com/nathoo/questmgr/engine/quest"
	"github.com/nathoo/questmgr/engine/save"
	"github.com/nathoo/questmgr/sim"
	"github.com/nathoo/questmgr/store"
	"github.com/nathoo/questmgr/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Manager   *manager.Manager
	World     *sim.World
	Slots     *store.SlotStore // nil disables save and load
	Slot      string           // default save slot
	In        io.Reader
	Out       io.Writer
	EchoInput bool // echo each input line after the prompt (for script playback)

	history *History
	styles  styles
}

// New creates a CLI wired to the given manager and world.
func New(m *manager.Manager, w *sim.World) *CLI {
	return &CLI{
		Manager: m,
		World:   w,
		Slot:    "autosave",
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

// Run reads commands until quit or end of input.
func (c *CLI) Run(ctx context.Context) {
	c.history = NewHistory(100)
	c.styles = newStyles(c.Out)

	c.printSystem("Type help for available commands.")

	scanner := bufio.NewScanner(c.In)
	for {
		if ctx.Err() != nil {
			return
		}
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			last, ok := c.history.Last()
			if !ok {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = last
		} else {
			c.history.Push(input)
		}

		if c.Execute(ctx, input) {
			return
		}
	}
}

// Execute runs a single command line. Returns true if the session should
// end.
func (c *CLI) Execute(ctx context.Context, input string) bool {
	if c.history == nil {
		c.history = NewHistory(100)
		c.styles = newStyles(c.Out)
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "quit", "exit":
		c.printSystem("Goodbye.")
		return true
	case "help":
		c.cmdHelp()
	case "list", "ls":
		c.cmdList()
	case "show":
		c.cmdShow(arg)
	case "select":
		c.cmdSelect(arg)
	case "accept":
		c.cmdAccept(arg)
	case "abandon":
		c.cmdAbandon(arg)
	case "fly":
		c.cmdFly(arg)
	case "travel":
		c.reportError(c.World.Travel(arg))
	case "fleet":
		c.cmdFleet(parts[1:])
	case "activate":
		c.reportError(c.World.Activate(arg))
	case "deactivate":
		c.World.Deactivate()
	case "tick":
		c.cmdTick(arg)
	case "subs":
		c.cmdSubs()
	case "save":
		c.cmdSave(ctx, arg)
	case "load":
		c.cmdLoad(ctx, arg)
	case "slots":
		c.cmdSlots(ctx)
	case "history":
		for _, h := range c.history.Entries() {
			c.printLine("  " + h)
		}
	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type help for available commands.", cmd))
	}
	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"Quests:",
		"  list                  Show every quest by status",
		"  show <quest>          Describe a quest and its steps",
		"  select <quest>        Track an active quest",
		"  accept <quest>        Start an available quest",
		"  abandon <quest>       Give up an active quest",
		"  subs                  Show event subscriptions",
		"",
		"World:",
		"  fly <ship>            Take control of a ship",
		"  travel <sector>       Move the player fleet",
		"  fleet <id> <sector>   Move another fleet",
		"  activate [sector]     Start flying in the current sector",
		"  deactivate            Stop flying",
		"  tick <seconds>        Let time pass",
		"",
		"Session:",
		"  save [slot]           Save quests",
		"  load [slot]           Load quests",
		"  slots                 List save slots",
		"  history               Show entered commands",
		"  again (g)             Repeat the last command",
		"  quit                  Exit",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdList() {
	m := c.Manager
	c.printSection("Active", m.ActiveQuests())
	c.printSection("Available", m.AvailableQuests())
	c.printSection("Pending", m.PendingQuests())
	c.printSection("Finished", m.OldQuests())
}

func (c *CLI) printSection(title string, quests []quest.Quest) {
	c.printLine(c.styles.heading.Render(title))
	if len(quests) == 0 {
		c.printLine("  (none)")
		return
	}
	selected := c.Manager.SelectedQuest()
	for _, q := range quests {
		line := fmt.Sprintf("  %s  %s", q.Identifier(), q.Name())
		switch {
		case q == selected:
			c.printLine(c.styles.selected.Render("* " + strings.TrimPrefix(line, "  ")))
		case q.Status() == types.StatusActive || q.Status() == types.StatusAvailable || q.Status() == types.StatusPending:
			c.printLine(line)
		default:
			c.printLine(c.styles.done.Render(fmt.Sprintf("%s (%s)", line, q.Status())))
		}
	}
}

func (c *CLI) cmdShow(id string) {
	q := c.lookup(id)
	if q == nil {
		return
	}
	c.printLine(c.styles.heading.Render(q.Name()))
	c.printLine(fmt.Sprintf("  id: %s  category: %s  status: %s", q.Identifier(), q.Category(), q.Status()))
	if q.Description() != "" {
		c.printLine("  " + q.Description())
	}

	current := -1
	switch q.Status() {
	case types.StatusActive:
		current = q.Save().CurrentStepIndex
	case types.StatusSuccessful:
		current = len(q.Steps())
	}
	for _, step := range q.Steps() {
		mark := "[ ]"
		switch {
		case step.StepIndex() < current:
			mark = "[x]"
		case step.StepIndex() == current:
			mark = "[>]"
		}
		desc := step.Description()
		if desc == "" {
			desc = step.Identifier()
		}
		c.printLine(fmt.Sprintf("  %s %d. %s", mark, step.StepIndex()+1, desc))
	}
}

func (c *CLI) cmdSelect(id string) {
	q := c.lookup(id)
	if q == nil {
		return
	}
	c.Manager.SelectQuest(q)
	if c.Manager.SelectedQuest() == q {
		c.printSystem(fmt.Sprintf("Tracking %s.", q.Name()))
		return
	}
	c.printError(fmt.Sprintf("Cannot select %s: it is %s.", q.Identifier(), q.Status()))
}

func (c *CLI) cmdAccept(id string) {
	q := c.lookup(id)
	if q == nil {
		return
	}
	if q.Status() != types.StatusAvailable {
		c.printError(fmt.Sprintf("Cannot accept %s: it is %s.", q.Identifier(), q.Status()))
		return
	}
	c.Manager.AcceptQuest(q)
}

func (c *CLI) cmdAbandon(id string) {
	q := c.lookup(id)
	if q == nil {
		return
	}
	if q.Status() != types.StatusActive {
		c.printError(fmt.Sprintf("Cannot abandon %s: it is %s.", q.Identifier(), q.Status()))
		return
	}
	c.Manager.AbandonQuest(q)
}

func (c *CLI) cmdFly(ship string) {
	if ship == "" {
		c.printError("Usage: fly <ship>")
		return
	}
	c.World.Fly(ship)
}

func (c *CLI) cmdFleet(args []string) {
	if len(args) < 2 {
		c.printError("Usage: fleet <id> <sector>")
		return
	}
	c.reportError(c.World.MoveFleet(args[0], args[1]))
}

func (c *CLI) cmdTick(arg string) {
	seconds, err := strconv.ParseFloat(arg, 64)
	if err != nil || seconds <= 0 {
		c.printError("Usage: tick <seconds>")
		return
	}
	c.World.Tick(seconds)
}

func (c *CLI) cmdSubs() {
	kinds := []types.CallbackKind{
		types.CallbackFlyShip,
		types.CallbackTickFlying,
		types.CallbackSectorVisited,
		types.CallbackSectorActive,
		types.CallbackQuest,
	}
	for _, kind := range kinds {
		var ids []string
		for _, q := range c.Manager.Subscribers(kind) {
			ids = append(ids, q.Identifier())
		}
		c.printLine(fmt.Sprintf("  %-15s %s", kind, strings.Join(ids, ", ")))
	}
}

func (c *CLI) cmdSave(ctx context.Context, slot string) {
	if c.Slots == nil {
		c.printError("Save failed: no save store configured.")
		return
	}
	if slot == "" {
		slot = c.Slot
	}

	data, err := save.Save(c.Manager.Save(), c.World.Save(), save.FormatVersion)
	if err != nil {
		c.printError(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := c.Slots.Put(ctx, slot, save.FormatVersion, data); err != nil {
		c.printError(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Quests saved to %s.", slot))
}

func (c *CLI) cmdLoad(ctx context.Context, slot string) {
	if c.Slots == nil {
		c.printError("Load failed: no save store configured.")
		return
	}
	if slot == "" {
		slot = c.Slot
	}

	stored, err := c.Slots.Get(ctx, slot)
	if errors.Is(err, store.ErrNotFound) {
		c.printError(fmt.Sprintf("Load failed: no save named %s.", slot))
		return
	}
	if err != nil {
		c.printError(fmt.Sprintf("Load failed: %v", err))
		return
	}
	sd, err := save.Load(stored.Data)
	if err != nil {
		c.printError(fmt.Sprintf("Load failed: %v", err))
		return
	}

	c.World.Restore(sd.World)
	c.Manager.Load(sd.Quests)
	c.printSystem(fmt.Sprintf("Quests loaded from %s (%d active).", slot, len(c.Manager.ActiveQuests())))
}

func (c *CLI) cmdSlots(ctx context.Context) {
	if c.Slots == nil {
		c.printError("No save store configured.")
		return
	}
	slots, err := c.Slots.List(ctx)
	if err != nil {
		c.printError(fmt.Sprintf("Listing slots failed: %v", err))
		return
	}
	if len(slots) == 0 {
		c.printSystem("No saves.")
		return
	}
	for _, s := range slots {
		c.printLine(fmt.Sprintf("  %s  v%s  %s", s.Name, s.Version, s.UpdatedAt.Local().Format("2006-01-02 15:04:05")))
	}
}

// lookup finds any quest by identifier, pending ones included.
func (c *CLI) lookup(id string) quest.Quest {
	if id == "" {
		c.printError("Missing quest identifier.")
		return nil
	}
	for _, q := range c.Manager.Quests() {
		if q.Identifier() == id {
			return q
		}
	}
	c.printError(fmt.Sprintf("Unknown quest: %s", id))
	return nil
}

func (c *CLI) reportError(err error) {
	if err != nil {
		c.printError(err.Error())
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintln(c.Out, c.styles.system.Render("["+text+"]"))
}

func (c *CLI) printError(text string) {
	fmt.Fprintln(c.Out, c.styles.errorText.Render("["+text+"]"))
}
