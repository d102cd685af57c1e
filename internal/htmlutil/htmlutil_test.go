package htmlutil

import "testing"

const testHTML = `
<html><body>
<form id="apply" method="POST" action="/apply">
  <label for="fn">
    Applicant
    Name
  </label>
  <input type="text" name="full_name" id="fn" class="wide"/>
  <input type="email" name="mail" aria-label="Email Address"/>
  <textarea name="notes" placeholder="Additional notes"></textarea>
  <select name="gender"><option>Male</option><option>Female</option></select>
  <input type="submit" value="Apply"/>
</form>
</body></html>
`

func TestControls(t *testing.T) {
	doc, err := LoadHTMLString(testHTML)
	if err != nil {
		t.Fatal(err)
	}
	controls := Controls(doc)
	// 3 inputs + textarea + select
	if len(controls) != 5 {
		t.Errorf("expected 5 controls, got %d", len(controls))
	}
	if name := controls[0].Get(0).Data; name != "input" {
		t.Errorf("first control tag = %q, want input", name)
	}
}

func TestAttributes(t *testing.T) {
	doc, _ := LoadHTMLString(testHTML)
	controls := Controls(doc)
	attrs := Attributes(controls[0])
	if attrs["name"] != "full_name" || attrs["id"] != "fn" || attrs["class"] != "wide" {
		t.Errorf("unexpected attribute bag: %v", attrs)
	}
}

func TestLabelTextByFor(t *testing.T) {
	doc, _ := LoadHTMLString(testHTML)
	controls := Controls(doc)
	if got := LabelText(doc, controls[0]); got != "Applicant Name" {
		t.Errorf("label = %q, want %q (whitespace collapsed)", got, "Applicant Name")
	}
}

func TestLabelTextFallbacks(t *testing.T) {
	doc, _ := LoadHTMLString(testHTML)
	controls := Controls(doc)

	if got := LabelText(doc, controls[1]); got != "Email Address" {
		t.Errorf("aria-label fallback = %q, want %q", got, "Email Address")
	}
	if got := LabelText(doc, controls[2]); got != "Additional notes" {
		t.Errorf("placeholder fallback = %q, want %q", got, "Additional notes")
	}
	if got := LabelText(doc, controls[3]); got != "" {
		t.Errorf("no label sources = %q, want empty", got)
	}
}

func TestLoadMalformed(t *testing.T) {
	doc, err := LoadHTMLString(`<form><input name="a"><p>unclosed<input name="b"`)
	if err != nil {
		t.Fatalf("malformed HTML should still parse: %v", err)
	}
	if got := len(Controls(doc)); got != 2 {
		t.Errorf("expected 2 controls from malformed markup, got %d", got)
	}
}
