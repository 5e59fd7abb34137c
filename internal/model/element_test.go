package model

import "testing"

func TestDescriptor(t *testing.T) {
	tests := []struct {
		name string
		el   Element
		want string
	}{
		{"tag only", Element{Tag: "a"}, "a"},
		{"tag and id", Element{Tag: "button", ID: "buy"}, "button#buy"},
		{"classes", Element{Tag: "input", Classes: []string{"field", "wide"}}, "input.field.wide"},
		{"everything", Element{Tag: "BUTTON", ID: "buy", Classes: []string{"btn", "", "primary"}}, "button#buy.btn.primary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Descriptor(); got != tt.want {
				t.Errorf("Descriptor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttr_PresentButEmpty(t *testing.T) {
	el := Element{Tag: "img", Attrs: map[string]string{"alt": ""}}
	v, ok := el.Attr("alt")
	if !ok {
		t.Fatal("alt should be present")
	}
	if v != "" {
		t.Errorf("alt: got %q, want empty", v)
	}
	if el.HasAttr("src") {
		t.Error("src should be absent")
	}
}

func TestAttr_NilMap(t *testing.T) {
	el := Element{Tag: "div"}
	if el.HasAttr("id") {
		t.Error("nil attrs should report nothing present")
	}
}

func TestHidden(t *testing.T) {
	if !(Element{Style: Style{Display: "none"}}).Hidden() {
		t.Error("display:none should be hidden")
	}
	if !(Element{Style: Style{Visibility: "hidden"}}).Hidden() {
		t.Error("visibility:hidden should be hidden")
	}
	if (Element{Style: Style{Display: "block", Visibility: "visible"}}).Hidden() {
		t.Error("visible block should not be hidden")
	}
}
