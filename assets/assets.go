// Package assets embeds the images shipped with the viewer.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed images/*.png
var files embed.FS

// FS serves keys such as "images/agente.png"
var FS fs.FS = files
