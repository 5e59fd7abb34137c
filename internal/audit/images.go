package audit

import (
	"fmt"
	"strings"

	"github.com/hopngo/a11y-audit/internal/model"
)

// ClassifyImages puts each <img> in at most one bucket:
//
//	no alt attribute            -> MissingAlt
//	alt="" aria-hidden="true"   -> DecorativeImages
//	alt=""                      -> EmptyAlt
//	non-empty alt               -> none
//
// Images are named by src, or "image-{n}" (n counted among images) when src
// is empty.
func ClassifyImages(snap *model.Snapshot) model.ImageAltResult {
	result := model.NewImageAltResult()
	for i, img := range snap.ByTag("img") {
		name, _ := img.Attr("src")
		if name == "" {
			name = fmt.Sprintf("image-%d", i)
		}

		alt, hasAlt := img.Attr("alt")
		switch {
		case !hasAlt:
			result.MissingAlt = append(result.MissingAlt, name)
		case alt != "":
		case strings.EqualFold(img.Attrs["aria-hidden"], "true"):
			result.DecorativeImages = append(result.DecorativeImages, name)
		default:
			result.EmptyAlt = append(result.EmptyAlt, name)
		}
	}
	return result
}
