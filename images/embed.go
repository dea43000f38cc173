package images

import _ "embed"

// Embed the app icon into the binary so runtime does not need the images folder.
//go:embed sun.svg
var Sun []byte
