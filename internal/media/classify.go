package media

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recognized extensions, lowercase with leading dot, in reporting order.
var extensions = []string{
	// Images
	".bmp",
	".gif",
	".jpg",
	".jpeg",
	".png",
	".psd",
	".pspimage",
	".thm",
	".tif",
	".tiff",
	".yuv",
	".ai",
	".drw",
	".eps",
	".ps",
	".svg",
	".raw",
	".ppm",
	".pgm",
	".pbm",
	".pnm",
	".pfm",
	// Videos
	".3g2",
	".3gp",
	".asf",
	".asx",
	".avi",
	".flv",
	".mov",
	".mp4",
	".mpg",
	".rm",
	".swf",
	".vob",
	".wmv",
}

var allowList = func() map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}
	return set
}()

// Extension returns the case-folded suffix of name starting at its last dot,
// or "" when there is none. A dot that only starts the name (".profile") does
// not begin an extension.
func Extension(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return ""
	}
	// A fresh Caser per call: Casers are not safe for concurrent use.
	return cases.Lower(language.Und).String(name[dot:])
}

// IsMedia reports whether name carries an allow-listed extension.
func IsMedia(name string) bool {
	ext := Extension(name)
	if ext == "" {
		return false
	}
	_, ok := allowList[ext]
	return ok
}

// Extensions returns the allow-list in its canonical order.
func Extensions() []string {
	out := make([]string, len(extensions))
	copy(out, extensions)
	return out
}
