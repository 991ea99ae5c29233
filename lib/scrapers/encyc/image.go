package encyc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const termsBaseUrl = "https://terms.naver.com"

// placeholder image names the cdn serves for entries without a photo
var dummyImageMarkers = []string{
	"e.gif",
	"blank.gif",
	"spacer.gif",
	"transparent.gif",
	"empty.png",
	"pixel.gif",
	"noimage",
	"no_img",
	"no-img",
	"img_x",
	"_blank",
	"loading.gif",
	"spinner.gif",
}

func isDummyImage(url string) bool {
	lowered := strings.ToLower(url)
	for _, marker := range dummyImageMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func absoluteImageUrl(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	if strings.HasPrefix(url, "/") {
		return termsBaseUrl + url
	}
	return url
}

// ExtractImage pulls the product photo out of the entry's image box
// and reports whether one was found. only span.img_box images count,
// everything else on the page is layout chrome. the original upload
// beats the resized src which beats a lazy-loading data attribute.
func ExtractImage(doc *goquery.Document, out *Document) bool {
	found := false
	doc.Find("span.img_box a img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		url, quality := "", ""
		if origin, ok := img.Attr("origin_src"); ok && origin != "" {
			url, quality = origin, "high"
		} else if src, ok := img.Attr("src"); ok && src != "" {
			url, quality = src, "medium"
		} else if dataSrc, ok := img.Attr("data-src"); ok && dataSrc != "" {
			url, quality = dataSrc, "low"
		}
		if url == "" || isDummyImage(url) {
			return true
		}

		out.Set("image_url", absoluteImageUrl(url))
		out.Set("image_quality", quality)
		if width, ok := img.Attr("width"); ok {
			out.Set("image_width", width)
		}
		if height, ok := img.Attr("height"); ok {
			out.Set("image_height", height)
		}
		if width, ok := img.Attr("origin_width"); ok {
			out.Set("original_width", width)
		}
		if height, ok := img.Attr("origin_height"); ok {
			out.Set("original_height", height)
		}
		if alt, ok := img.Attr("alt"); ok {
			out.Set("image_alt", alt)
		}
		found = true
		return false
	})
	return found
}
