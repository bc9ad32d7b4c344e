// Package chart renders the analytics series with canvas primitives.
package chart

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"studyplanner/internal/core/analytics"
)

var (
	completedColor = color.NRGBA{R: 99, G: 102, B: 241, A: 230}
	minutesColor   = color.NRGBA{R: 34, G: 197, B: 94, A: 230}
	axisColor      = color.NRGBA{R: 140, G: 140, B: 140, A: 255}
)

const (
	topMargin    = float32(26)
	bottomMargin = float32(30)
	sideMargin   = float32(10)
	labelSize    = float32(11)
)

// WeeklyBars is a grouped bar chart for the trailing week: completed
// tasks and study minutes per day, each scaled to its own maximum.
type WeeklyBars struct {
	size fyne.Size
	plot *fyne.Container
	root fyne.CanvasObject
}

// NewWeeklyBars creates an empty chart of a fixed size.
func NewWeeklyBars(width, height float32) *WeeklyBars {
	plot := container.NewWithoutLayout()
	bars := &WeeklyBars{size: fyne.NewSize(width, height), plot: plot}
	bars.root = container.NewGridWrap(bars.size, plot)
	return bars
}

// Object returns the renderable chart.
func (bars *WeeklyBars) Object() fyne.CanvasObject {
	return bars.root
}

// SetSeries replaces the chart contents with the given week.
func (bars *WeeklyBars) SetSeries(points []analytics.DayPoint) {
	objects := bars.legend()

	plotBottom := bars.size.Height - bottomMargin
	plotHeight := plotBottom - topMargin

	baseline := canvas.NewRectangle(axisColor)
	baseline.Resize(fyne.NewSize(bars.size.Width-2*sideMargin, 1))
	baseline.Move(fyne.NewPos(sideMargin, plotBottom))
	objects = append(objects, baseline)

	maxCompleted, maxMinutes := 1, 1
	for _, point := range points {
		if point.CompletedTasks > maxCompleted {
			maxCompleted = point.CompletedTasks
		}
		if point.StudyMinutes > maxMinutes {
			maxMinutes = point.StudyMinutes
		}
	}

	groupWidth := (bars.size.Width - 2*sideMargin) / float32(len(points))
	barWidth := groupWidth * 0.28
	for index, point := range points {
		groupLeft := sideMargin + groupWidth*float32(index)

		completedHeight := plotHeight * float32(point.CompletedTasks) / float32(maxCompleted)
		objects = append(objects, bar(
			fyne.NewPos(groupLeft+groupWidth*0.18, plotBottom-completedHeight),
			fyne.NewSize(barWidth, completedHeight),
			completedColor,
			point.CompletedTasks,
		)...)

		minutesHeight := plotHeight * float32(point.StudyMinutes) / float32(maxMinutes)
		objects = append(objects, bar(
			fyne.NewPos(groupLeft+groupWidth*0.54, plotBottom-minutesHeight),
			fyne.NewSize(barWidth, minutesHeight),
			minutesColor,
			point.StudyMinutes,
		)...)

		day := canvas.NewText(point.Weekday, axisColor)
		day.TextSize = labelSize
		day.Move(fyne.NewPos(groupLeft+groupWidth*0.32, plotBottom+6))
		objects = append(objects, day)
	}

	bars.plot.Objects = objects
	bars.plot.Refresh()
}

func bar(position fyne.Position, size fyne.Size, fill color.Color, value int) []fyne.CanvasObject {
	rectangle := canvas.NewRectangle(fill)
	rectangle.Move(position)
	rectangle.Resize(size)
	if value == 0 {
		return []fyne.CanvasObject{rectangle}
	}

	label := canvas.NewText(fmt.Sprintf("%d", value), axisColor)
	label.TextSize = labelSize
	label.Move(fyne.NewPos(position.X, position.Y-labelSize-3))
	return []fyne.CanvasObject{rectangle, label}
}

func (bars *WeeklyBars) legend() []fyne.CanvasObject {
	completedSwatch := canvas.NewRectangle(completedColor)
	completedSwatch.Resize(fyne.NewSize(10, 10))
	completedSwatch.Move(fyne.NewPos(sideMargin, 6))
	completedText := canvas.NewText("Completed tasks", axisColor)
	completedText.TextSize = labelSize
	completedText.Move(fyne.NewPos(sideMargin+14, 3))

	minutesSwatch := canvas.NewRectangle(minutesColor)
	minutesSwatch.Resize(fyne.NewSize(10, 10))
	minutesSwatch.Move(fyne.NewPos(sideMargin+130, 6))
	minutesText := canvas.NewText("Study minutes", axisColor)
	minutesText.TextSize = labelSize
	minutesText.Move(fyne.NewPos(sideMargin+144, 3))

	return []fyne.CanvasObject{completedSwatch, completedText, minutesSwatch, minutesText}
}
