package model

import "testing"

func TestNormalizeWhatsApp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "international with spaces", in: "+57 300 123 4567", want: "573001234567"},
		{name: "already digits", in: "573001234567", want: "573001234567"},
		{name: "dashes and parens", in: "(57) 300-123-4567", want: "573001234567"},
		{name: "no digits", in: "abc", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeWhatsApp(tt.in); got != tt.want {
				t.Errorf("NormalizeWhatsApp(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOutputName(t *testing.T) {
	if got := OutputName("abc", true); got != "CATA_abc_watermark.pdf" {
		t.Errorf("watermarked name = %q", got)
	}
	if got := OutputName("abc", false); got != "CATA_abc.pdf" {
		t.Errorf("clean name = %q", got)
	}
}

func TestRenderJobValidate(t *testing.T) {
	j := &RenderJob{WhatsApp: "", CSVPath: "x.csv"}
	if err := j.Validate(); err != ErrContactRequired {
		t.Errorf("Validate() = %v, want ErrContactRequired", err)
	}

	j = &RenderJob{WhatsApp: "573001234567"}
	if err := j.Validate(); err == nil {
		t.Error("Validate() with empty csv path should fail")
	}

	j = &RenderJob{WhatsApp: "573001234567", CSVPath: "x.csv"}
	if err := j.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}
