package lightapp

import (
	"fyne.io/fyne/v2"

	"github.com/edward-ap/daylight/images"
)

// AppIcon is the icon used for the app and window, bundled into the binary via
// the images package.
var AppIcon fyne.Resource

func init() {
	if len(images.Sun) > 0 {
		AppIcon = fyne.NewStaticResource("sun.svg", images.Sun)
	}
}
