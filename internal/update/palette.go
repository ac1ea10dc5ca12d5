package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			h, err := m.Engine.AddHabit(ctx, a.Name)
			if err != nil {
				return commands.Result{}, err
			}
			m.Cursor = len(m.Engine.Habits()) - 1
			return commands.Result{Message: fmt.Sprintf("added habit: %s", h.Name)}, nil
		},
		Rename: func(r commands.RenameArgs) (commands.Result, error) {
			h, err := m.habitByTarget(r.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Engine.RenameHabit(ctx, h.ID, r.Name); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("renamed %s to %s", h.Name, r.Name)}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			h, err := m.habitByTarget(d.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Engine.DeleteHabit(ctx, h.ID); err != nil {
				return commands.Result{}, err
			}
			m.clampCursor()
			return commands.Result{Message: fmt.Sprintf("deleted %s", h.Name)}, nil
		},
		Mark: func(a commands.MarkArgs) (commands.Result, error) {
			h, err := m.habitByTarget(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			status, err := model.ParseStatus(a.Status)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Engine.SetStatus(ctx, string(m.Day), h.ID, status, a.Reason); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s: %s %s", m.Day, h.Name, status)}, nil
		},
		Clear: func(c commands.ClearArgs) (commands.Result, error) {
			h, err := m.habitByTarget(c.Target)
			if err != nil {
				return commands.Result{}, err
			}
			day := m.Day
			if c.Date != "" {
				day, err = model.ParseDateKey(c.Date)
				if err != nil {
					return commands.Result{}, err
				}
			}
			if err := m.Engine.ClearStatus(ctx, string(day), h.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s: cleared %s", day, h.Name)}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			var day model.DateKey
			switch g.Date {
			case "today":
				day = model.KeyFor(m.now())
			case "yesterday":
				day = model.KeyFor(m.now().AddDate(0, 0, -1))
			default:
				var err error
				day, err = model.ParseDateKey(g.Date)
				if err != nil {
					return commands.Result{}, err
				}
			}
			m.Day = day
			m.CurrentView = ViewToday
			return commands.Result{Message: fmt.Sprintf("focused %s", day)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

// habitByTarget resolves a palette target against the habit set: exact id
// first, then exact name, then a unique name prefix, case-insensitive.
func (m Model) habitByTarget(target string) (model.Habit, error) {
	if h, ok := m.Engine.Habit(target); ok {
		return h, nil
	}
	needle := strings.ToLower(strings.TrimSpace(target))
	var prefix []model.Habit
	for _, h := range m.Engine.Habits() {
		name := strings.ToLower(h.Name)
		if name == needle {
			return h, nil
		}
		if strings.HasPrefix(name, needle) {
			prefix = append(prefix, h)
		}
	}
	if len(prefix) == 1 {
		return prefix[0], nil
	}
	if len(prefix) > 1 {
		return model.Habit{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("habit %q is ambiguous", target)}
	}
	return model.Habit{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no habit matches %q", target)}
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
