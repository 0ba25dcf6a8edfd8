package imagecache

import (
	"fmt"
	"image"
	"io/fs"
	"strings"

	// Decoders registered for image.Decode
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// FSLoader decodes images stored in a file system. Keys are slash paths; a
// leading "/" is ignored so classpath-style keys ("/images/agent.png") work.
type FSLoader struct {
	FS fs.FS
}

// Load opens and decodes key.
func (l FSLoader) Load(key string) (image.Image, error) {
	name := strings.TrimPrefix(key, "/")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("image %q: %w", key, fs.ErrInvalid)
	}
	f, err := l.FS.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	return img, nil
}
