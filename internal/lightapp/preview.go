package lightapp

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/daylight/internal/lighting"
	"github.com/edward-ap/daylight/internal/ui"
)

// previewSink shows the latest lighting style as YAML.
type previewSink struct {
	label *widget.Label
}

func newPreviewSink() *previewSink {
	l := widget.NewLabel("")
	l.TextStyle = fyne.TextStyle{Monospace: true}
	return &previewSink{label: l}
}

func (p *previewSink) SetLightingStyle(st lighting.Style) error {
	out, err := st.YAML()
	if err != nil {
		return err
	}
	ui.CallOnMain(func() { p.label.SetText(out) })
	return nil
}

func (p *previewSink) Text() string { return p.label.Text }
