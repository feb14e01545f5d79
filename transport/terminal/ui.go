package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const (
	boardSide     = 3
	updatesBuffer = 64
)

const keysHint = "[dimgray]enter/1-9[-] play  [dimgray]r[-] reset board  [dimgray]s[-] reset scores  [dimgray]m[-] switch mode  [dimgray]q[-] quit"

type gameEngine interface {
	Snapshot() entity.Snapshot
	MakeTurn(cell int) entity.Snapshot
	Reset() entity.Snapshot
	ResetScores() entity.Snapshot
	ToggleMode() entity.Snapshot
	Subscribe(observer usecase.Observer) func()
}

// UI is the local terminal front end. It forwards cell selections to the engine
// and redraws whenever the engine publishes a new snapshot.
type UI struct {
	logger *slog.Logger
	engine gameEngine

	app    *tview.Application
	board  *tview.Table
	status *tview.TextView
	scores *tview.TextView
}

func New(logger *slog.Logger, engine gameEngine) *UI {
	ui := &UI{
		logger: logger.With("component", "terminal"),
		engine: engine,

		app:    tview.NewApplication(),
		board:  tview.NewTable(),
		status: tview.NewTextView(),
		scores: tview.NewTextView(),
	}

	ui.board.SetBorders(true)
	ui.board.SetSelectable(true, true)
	ui.board.SetBorder(true).SetTitle(" Tic-Tac-Toe ")
	for row := range boardSide {
		for col := range boardSide {
			ui.board.SetCell(row, col, tview.NewTableCell("   ").SetAlign(tview.AlignCenter).SetExpansion(1))
		}
	}
	ui.board.SetSelectedFunc(func(row, col int) {
		ui.engine.MakeTurn(row*boardSide + col)
	})

	ui.status.SetDynamicColors(true)
	ui.status.SetTextAlign(tview.AlignCenter)
	ui.scores.SetDynamicColors(true)
	ui.scores.SetTextAlign(tview.AlignCenter)

	hint := tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter).SetText(keysHint)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.status, 1, 0, false).
		AddItem(ui.board, 0, 1, true).
		AddItem(ui.scores, 1, 0, false).
		AddItem(hint, 1, 0, false)

	ui.app.SetRoot(layout, true).EnableMouse(true)
	ui.app.SetInputCapture(ui.handleKey)

	ui.render(engine.Snapshot())

	return ui
}

// Run - blocks until the user quits or ctx is done.
func (that *UI) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	updates := make(chan entity.Snapshot, updatesBuffer)
	done := make(chan struct{})
	defer close(done)

	unsubscribe := that.engine.Subscribe(func(snapshot entity.Snapshot) {
		select {
		case updates <- snapshot:
		case <-done:
		}
	})
	defer unsubscribe()

	go func() {
		for {
			select {
			case snapshot := <-updates:
				that.app.QueueUpdateDraw(func() {
					that.render(snapshot)
				})
			case <-ctx.Done():
				that.app.Stop()
				return
			case <-done:
				return
			}
		}
	}()

	if ctx.Err() != nil {
		return nil
	}

	log.Info("Terminal UI started")

	if err := that.app.Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}

	log.Info("Terminal UI stopped")

	return nil
}

func (that *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		that.app.Stop()
		return nil
	}

	if event.Key() != tcell.KeyRune {
		return event
	}

	switch r := event.Rune(); {
	case r >= '1' && r <= '9':
		that.engine.MakeTurn(int(r - '1'))
	case r == 'r':
		that.engine.Reset()
	case r == 's':
		that.engine.ResetScores()
	case r == 'm':
		that.engine.ToggleMode()
	case r == 'q':
		that.app.Stop()
	default:
		return event
	}

	return nil
}

func (that *UI) render(snapshot entity.Snapshot) {
	for cell, mark := range snapshot.Board {
		that.board.GetCell(cell/boardSide, cell%boardSide).SetText(cellText(mark))
	}

	that.status.SetText(statusLine(snapshot))
	that.scores.SetText(scoreLine(snapshot.Scores) + "  " + modeLine(snapshot.Mode))
}

func cellText(mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return "[red::b] X [-:-:-]"
	case entity.PlayerO:
		return "[blue::b] O [-:-:-]"
	default:
		return "   "
	}
}

func statusLine(snapshot entity.Snapshot) string {
	switch snapshot.Outcome.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Winner: %s", snapshot.Outcome.Winner)
	case entity.StatusDrawn:
		return "It's a Draw!"
	default:
		if snapshot.ComputerThinking {
			return fmt.Sprintf("Next Player: %s (thinking...)", snapshot.Turn)
		}
		return fmt.Sprintf("Next Player: %s", snapshot.Turn)
	}
}

func scoreLine(scores entity.Scores) string {
	return fmt.Sprintf("X Score: %d | O Score: %d", scores.X, scores.O)
}

func modeLine(mode entity.Mode) string {
	if mode.IsWithBot() {
		return "[dimgray](vs computer)[-]"
	}
	return "[dimgray](two players)[-]"
}
