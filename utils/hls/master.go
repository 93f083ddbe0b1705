package hls

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	// a stream-inf tag carrying a resolution, followed by an absolute variant url
	variantRegex = regexp.MustCompile(`#EXT-X-STREAM-INF:.*RESOLUTION=(\d+x\d+)[\r\n]+(https?://[^\r\n]+)`)
)

type Variant struct {
	Width  int
	Height int
	URL    string
}

func (v Variant) Pixels() int {
	return v.Width * v.Height
}

// ParseVariants returns the variants of a master playlist in playlist order.
func ParseVariants(playlist string) []Variant {
	variants := make([]Variant, 0)

	for _, m := range variantRegex.FindAllStringSubmatch(playlist, -1) {
		dims := strings.SplitN(m[1], "x", 2)
		width, err := strconv.Atoi(dims[0])
		if err != nil {
			continue
		}
		height, err := strconv.Atoi(dims[1])
		if err != nil {
			continue
		}

		variants = append(variants, Variant{
			Width:  width,
			Height: height,
			URL:    strings.TrimSpace(m[2]),
		})
	}

	return variants
}

// Highest returns the variant with the largest pixel count. The earliest variant wins a tie.
func Highest(variants []Variant) (*Variant, bool) {
	if len(variants) == 0 {
		return nil, false
	}

	best := lo.MaxBy(variants, func(a Variant, b Variant) bool {
		return a.Pixels() > b.Pixels()
	})
	return &best, true
}
