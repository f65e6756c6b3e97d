package hdlir

import "testing"

func TestValueFitsWidth(t *testing.T) {
	cases := []struct {
		width int
		value int64
		want  bool
	}{
		{4, 15, true},
		{4, 16, false},
		{1, 1, true},
		{1, 2, false},
		{0, 0, true},
		{0, 1, false},
	}
	for _, c := range cases {
		if got := ValueFitsWidth(c.width, c.value); got != c.want {
			t.Errorf("ValueFitsWidth(%d, %d) = %v, want %v", c.width, c.value, got, c.want)
		}
	}
}

func TestMinimumValueSize(t *testing.T) {
	cases := []struct {
		value int64
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 3},
		{255, 9},
	}
	for _, c := range cases {
		if got := MinimumValueSize(c.value); got != c.want {
			t.Errorf("MinimumValueSize(%d) = %d, want %d", c.value, got, c.want)
		}
	}
}

func TestNewIntegerConstantRejectsOverflow(t *testing.T) {
	if _, err := NewIntegerConstant(16, 4); err == nil {
		t.Fatalf("expected error constructing a 4-bit constant holding 16")
	}
	c, err := NewIntegerConstant(15, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Value != 15 || c.Width != 4 {
		t.Errorf("got %+v", c)
	}
}
