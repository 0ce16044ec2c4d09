package canvas

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
)

const DefaultFontSize = 10.0

// Font is the parsed form of a css like font shorthand such as
// "12px Trebuchet MS, Helvetica, sans-serif".
type Font struct {
	Size     float64
	Families []string
}

func ParseFont(str string) Font {
	f := Font{
		Size: DefaultFontSize,
	}
	str = strings.TrimSpace(str)
	if str == "" {
		return f
	}
	size, rest, _ := strings.Cut(str, " ")
	if px, ok := strings.CutSuffix(size, "px"); ok {
		if n, err := strconv.ParseFloat(px, 64); err == nil && n > 0 {
			f.Size = n
		}
	} else if pt, ok := strings.CutSuffix(size, "pt"); ok {
		if n, err := strconv.ParseFloat(pt, 64); err == nil && n > 0 {
			f.Size = n * 96 / 72
		}
	} else {
		rest = str
	}
	for _, fam := range strings.Split(rest, ",") {
		fam = strings.Trim(strings.TrimSpace(fam), `"'`)
		if fam != "" {
			f.Families = append(f.Families, fam)
		}
	}
	return f
}

var fonts = struct {
	sync.Mutex
	cache map[string]*truetype.Font
}{
	cache: make(map[string]*truetype.Font),
}

// Face returns the first family of the font that is a loadable truetype file
// or the default font of the renderer.
func (f Font) Face() (*truetype.Font, error) {
	for _, fam := range f.Families {
		if ext := strings.ToLower(filepath.Ext(fam)); ext != ".ttf" {
			continue
		}
		if ft, err := loadFont(fam); err == nil {
			return ft, nil
		}
	}
	return chart.GetDefaultFont()
}

func loadFont(file string) (*truetype.Font, error) {
	fonts.Lock()
	defer fonts.Unlock()
	if ft, ok := fonts.cache[file]; ok {
		return ft, nil
	}
	buf, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	ft, err := truetype.Parse(buf)
	if err != nil {
		return nil, err
	}
	fonts.cache[file] = ft
	return ft, nil
}
