package pattern

import "testing"

func TestNewHexHexLiteral(t *testing.T) {
	p, err := New("0x1A")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.String() != "00011010" {
		t.Errorf("got %q, want 00011010", p.String())
	}
}

func TestNewLegacyHexSuffix(t *testing.T) {
	p, err := New("1Ah")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.String() != "00011010" {
		t.Errorf("got %q, want 00011010", p.String())
	}
}

func TestNewBinaryPrefixes(t *testing.T) {
	for _, lit := range []string{"0b101x", "0B101x", "b101x", "B101x"} {
		p, err := New(lit)
		if err != nil {
			t.Fatalf("New(%q): %v", lit, err)
		}
		if p.String() != "101x" {
			t.Errorf("New(%q) = %q, want 101x", lit, p.String())
		}
	}
}

func TestNewDecimal(t *testing.T) {
	p, err := New("42")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, err := p.ToInteger()
	if err != nil {
		t.Fatalf("ToInteger: %v", err)
	}
	if v != 42 {
		t.Errorf("got %d, want 42", v)
	}
}

func TestNewWildcardOnly(t *testing.T) {
	p, err := New("xxxx")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Len() != 4 || p.IsNumeric() {
		t.Errorf("got %+v", p)
	}
}

func TestNewRejectsAmbiguous(t *testing.T) {
	if _, err := New("1a"); err == nil {
		t.Fatalf("expected error for ambiguous literal %q", "1a")
	}
}

func TestMatchZeroExtendsAndSkipsDontCare(t *testing.T) {
	p, err := New("0x1A")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !p.Match("0x001A") {
		t.Errorf("expected zero-extended match to succeed")
	}
	if p.Match("0x1B") {
		t.Errorf("expected mismatch")
	}

	wild, err := New("0b1x1x")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !wild.Match("0b1010") || !wild.Match("0b1111") {
		t.Errorf("expected don't-care bits to match either value")
	}
	if wild.Match("0b0010") {
		t.Errorf("expected mismatch on a defined bit")
	}
}

func TestCompareOrdering(t *testing.T) {
	p, err := New("10")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := p.Compare("5", "<")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if ok {
		t.Errorf("expected 10 < 5 to be false")
	}
	ok, err = p.Compare("20", "<")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if !ok {
		t.Errorf("expected 10 < 20 to be true")
	}
}

func TestCompareOrderingRejectsDontCare(t *testing.T) {
	p, err := New("0b1x")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := p.Compare("1", "<"); err == nil {
		t.Fatalf("expected error ordering a don't-care pattern")
	}
}
