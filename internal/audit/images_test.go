package audit

import (
	"context"
	"reflect"
	"testing"
)

func TestClassifyImages_MissingAlt(t *testing.T) {
	got := ClassifyImages(htmlSnapshot(t, `<img src="a.jpg">`))
	if !reflect.DeepEqual(got.MissingAlt, []string{"a.jpg"}) {
		t.Errorf("MissingAlt = %v, want [a.jpg]", got.MissingAlt)
	}
	if len(got.EmptyAlt) != 0 || len(got.DecorativeImages) != 0 {
		t.Errorf("other buckets should be empty: %+v", got)
	}
}

func TestClassifyImages_DecorativePlaceholderName(t *testing.T) {
	got := ClassifyImages(htmlSnapshot(t, `<img alt="" aria-hidden="true">`))
	if !reflect.DeepEqual(got.DecorativeImages, []string{"image-0"}) {
		t.Errorf("DecorativeImages = %v, want [image-0]", got.DecorativeImages)
	}
	if len(got.MissingAlt) != 0 || len(got.EmptyAlt) != 0 {
		t.Errorf("other buckets should be empty: %+v", got)
	}
}

func TestClassifyImages_EachImageInAtMostOneBucket(t *testing.T) {
	src := `<body>
<img src="logo.png" alt="HopNGo">
<img src="spacer.gif" alt="">
<img src="divider.png" alt="" aria-hidden="true">
<img src="hero.jpg">
<img alt="">
<img src="icon.svg" alt="" aria-hidden="false">
</body>`
	got := ClassifyImages(htmlSnapshot(t, src))

	want := map[string][]string{
		"missing":    {"hero.jpg"},
		"empty":      {"spacer.gif", "image-4", "icon.svg"},
		"decorative": {"divider.png"},
	}
	if !reflect.DeepEqual(got.MissingAlt, want["missing"]) {
		t.Errorf("MissingAlt = %v, want %v", got.MissingAlt, want["missing"])
	}
	if !reflect.DeepEqual(got.EmptyAlt, want["empty"]) {
		t.Errorf("EmptyAlt = %v, want %v", got.EmptyAlt, want["empty"])
	}
	if !reflect.DeepEqual(got.DecorativeImages, want["decorative"]) {
		t.Errorf("DecorativeImages = %v, want %v", got.DecorativeImages, want["decorative"])
	}

	seen := map[string]int{}
	for _, bucket := range [][]string{got.MissingAlt, got.EmptyAlt, got.DecorativeImages} {
		for _, name := range bucket {
			seen[name]++
		}
	}
	for name, n := range seen {
		if n > 1 {
			t.Errorf("%s appears in %d buckets", name, n)
		}
	}
	if _, ok := seen["logo.png"]; ok {
		t.Error("image with alt text should not be reported")
	}
}

func TestCheckImageAltText_EmptyPage(t *testing.T) {
	in := New(htmlProvider(t, `<html><body></body></html>`))
	got, err := in.CheckImageAltText(context.Background())
	if err != nil {
		t.Fatalf("CheckImageAltText: %v", err)
	}
	if got.MissingAlt == nil || got.EmptyAlt == nil || got.DecorativeImages == nil {
		t.Error("empty page should give empty, non-nil buckets")
	}
}
