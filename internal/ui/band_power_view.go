package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"mindlink/internal/headset"
)

const bandValuePlaceholder = "—"

// bandPowerView shows the latest band-power reading, one averaged value
// per frequency band. Methods must run on the UI goroutine.
type bandPowerView struct {
	box    fyne.CanvasObject
	values map[string]*widget.Label
}

func newBandPowerView() *bandPowerView {
	v := &bandPowerView{values: make(map[string]*widget.Label)}

	grid := container.NewGridWithColumns(2)
	for _, band := range headset.Bands() {
		value := widget.NewLabel(bandValuePlaceholder)
		v.values[band] = value
		grid.Add(widget.NewLabel(band))
		grid.Add(value)
	}
	v.box = grid

	return v
}

func (v *bandPowerView) Widget() fyne.CanvasObject {
	return v.box
}

// Update renders one reading, averaging each band across channels.
func (v *bandPowerView) Update(reading headset.BandPower) {
	for band, label := range v.values {
		label.SetText(formatBandValue(reading.Data[band]))
	}
}

// Clear resets every band to the placeholder.
func (v *bandPowerView) Clear() {
	for _, label := range v.values {
		label.SetText(bandValuePlaceholder)
	}
}

func formatBandValue(channels []float64) string {
	if len(channels) == 0 {
		return bandValuePlaceholder
	}

	var sum float64
	for _, value := range channels {
		sum += value
	}

	return fmt.Sprintf("%.2f", sum/float64(len(channels)))
}
