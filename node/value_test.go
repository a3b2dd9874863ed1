package node

import "testing"

func TestValueTextRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	tests := []Value{
		NullValue(),
		BoolValue(true),
		BoolValue(false),
		Int32Value(-42),
		Int64Value(1 << 40),
		Float64Value(3.25),
		Float64Value(-0.001),
		StringValue("hello"),
		StringValue("张三"),
	}
	for _, v := range tests {
		text := v.Text(opts)
		got, err := ParseValueText(v.Kind().TagChar(), text, opts)
		if err != nil {
			t.Fatalf("ParseValueText(%v, %q): %v", v.Kind(), text, err)
		}
		if got.Kind() != v.Kind() {
			t.Errorf("kind %v -> %v", v.Kind(), got.Kind())
		}
		if got.Text(opts) != text {
			t.Errorf("text %q -> %q", text, got.Text(opts))
		}
	}
}

func TestValueTagAlphabet(t *testing.T) {
	tests := []struct {
		kind ValueKind
		tag  byte
	}{
		{ValueString, '2'},
		{ValueInt32, '3'},
		{ValueInt64, '4'},
		{ValueFloat64, '5'},
		{ValueBool, '6'},
		{ValueNull, '1'},
	}
	for _, tc := range tests {
		if got := tc.kind.TagChar(); got != tc.tag {
			t.Errorf("%v tag = %c, want %c", tc.kind, got, tc.tag)
		}
		back, ok := ValueKindForTag(tc.tag)
		if !ok || back != tc.kind {
			t.Errorf("tag %c -> %v ok=%v", tc.tag, back, ok)
		}
	}
}

func TestValueOf(t *testing.T) {
	if v, err := ValueOf(7); err != nil || v.Kind() != ValueInt32 {
		t.Errorf("ValueOf(7) = %v, %v", v.Kind(), err)
	}
	if v, err := ValueOf(int64(1 << 40)); err != nil || v.Kind() != ValueInt64 {
		t.Errorf("ValueOf(big) = %v, %v", v.Kind(), err)
	}
	if v, err := ValueOf(nil); err != nil || !v.IsNull() {
		t.Errorf("ValueOf(nil) = %v, %v", v.Kind(), err)
	}
	if _, err := ValueOf(struct{}{}); err == nil {
		t.Error("ValueOf(struct) must fail")
	}
}

func TestNullLiteralDecodes(t *testing.T) {
	opts := DefaultOptions()
	v, err := ParseValueText(TagString, opts.NullLiteral, opts)
	if err != nil {
		t.Fatalf("ParseValueText: %v", err)
	}
	if !v.IsNull() {
		t.Error("null literal must decode to null")
	}
}
