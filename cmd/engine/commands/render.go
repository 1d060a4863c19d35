package commands

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	left         = 2
	top          = 2
)

// termColors maps the frame's color names onto the terminal palette.
var termColors = map[string]termbox.Attribute{
	rules.PlayerHeadColor: termbox.ColorGreen | termbox.AttrBold,
	rules.PlayerBodyColor: termbox.ColorBlue,
	rules.EnemyHeadColor:  termbox.ColorYellow,
	rules.EnemyBodyColor:  termbox.ColorRed,
	rules.FoodColor:       termbox.ColorGreen,
	rules.ObstacleColor:   termbox.ColorWhite,
}

func termColor(name string) termbox.Attribute {
	if c, ok := termColors[name]; ok {
		return c
	}
	return defaultColor
}

// cell is one character on the board, in board coordinates.
type cell struct {
	x, y int
	ch   rune
	fg   termbox.Attribute
	bg   termbox.Attribute
}

// boardCells lays out everything drawn inside the board border. Later cells
// win, so snakes are drawn over food and the player over everything.
func boardCells(frame *pb.GameFrame) []cell {
	var cells []cell
	for _, o := range frame.Obstacles {
		c := termColor(rules.ObstacleColor)
		cells = append(cells, cell{int(o.X), int(o.Y), '▓', c, bgColor})
	}
	if f := frame.Food; f != nil {
		c := termColor(rules.FoodColor)
		cells = append(cells, cell{int(f.X), int(f.Y), '●', c, bgColor})
	}
	cells = append(cells, snakeCells(frame.Enemy)...)
	cells = append(cells, snakeCells(frame.Player)...)
	return cells
}

func snakeCells(s *pb.Snake) []cell {
	if s == nil || len(s.Body) == 0 {
		return nil
	}
	cells := make([]cell, 0, len(s.Body))
	body := termColor(s.BodyColor)
	for i := len(s.Body) - 1; i > 0; i-- {
		b := s.Body[i]
		cells = append(cells, cell{int(b.X), int(b.Y), ' ', body, body})
	}
	head := termColor(s.HeadColor)
	h := s.Body[0]
	return append(cells, cell{int(h.X), int(h.Y), ' ', head, head})
}

// hud is the status line printed above the board.
func hud(frame *pb.GameFrame) string {
	text := fmt.Sprintf("Score %d  Level %d  High %d  Round %d  Food %d",
		frame.Score(), frame.Level, frame.HighScore, frame.Round, frame.FoodLifetime-frame.FoodAge)
	switch {
	case frame.Death != nil:
		text = fmt.Sprintf("%s  Game over (%s, scored %d)", text, frame.Death.Cause, frame.Death.Score)
	case !frame.Started:
		text += "  Press space to start"
	case frame.Paused:
		text += "  Paused"
	}
	return text
}

func render(game *pb.Game, frame *pb.GameFrame) error {
	if frame == nil {
		return errors.New("received nil frame")
	}
	err := termbox.Clear(defaultColor, defaultColor)
	if err != nil {
		return err
	}

	tbprint(left, top-2, defaultColor, defaultColor, fmt.Sprintf("Snake - Turn %d", frame.Turn))
	tbprint(left, top-1, defaultColor, defaultColor, hud(frame))
	renderBorder(int(game.Width), int(game.Height))
	for _, c := range boardCells(frame) {
		termbox.SetCell(left+1+c.x, top+1+c.y, c.ch, c.fg, c.bg)
	}

	return termbox.Flush()
}

func renderBorder(w, h int) {
	right, bottom := left+w+1, top+h+1
	for y := top + 1; y < bottom; y++ {
		termbox.SetCell(left, y, '│', defaultColor, bgColor)
		termbox.SetCell(right, y, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left, top, '┌', defaultColor, bgColor)
	termbox.SetCell(left, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(right, top, '┐', defaultColor, bgColor)
	termbox.SetCell(right, bottom, '┘', defaultColor, bgColor)

	fill(left+1, top, w, 1, termbox.Cell{Ch: '─'})
	fill(left+1, bottom, w, 1, termbox.Cell{Ch: '─'})
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
