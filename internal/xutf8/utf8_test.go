package xutf8

import "testing"

func TestForUCS2BE(t *testing.T) {
	in := []byte{0x00, 'V', 0x00, 0xF6, 0x00, 'g', 0x00, 'e', 0x00, 'l'}
	out, ok := ForUCS2BE(in)
	if !ok {
		t.Fatal("expected ok")
	}
	if out != "Vögel" {
		t.Errorf("got %q", out)
	}
	if len(out) != 6 {
		t.Errorf("got length %d, want 6", len(out))
	}
}

func TestForUCS2BETruncated(t *testing.T) {
	in := []byte{0x00, 'T', 0x00, 'h', 0x00, 'i', 0x00}
	if _, ok := ForUCS2BE(in); ok {
		t.Fatal("expected truncated input to fail")
	}
}

func TestForUCS4BE(t *testing.T) {
	in := []byte{0x00, 0x00, 0x00, 'F', 0x00, 0x00, 0x00, 'u', 0x00, 0x00, 0x00, 'n',
		0x00, 0x00, 0x00, ' ', 0x00, 0x01, 0x03, 0x19}
	out, ok := ForUCS4BE(in)
	if !ok {
		t.Fatal("expected ok")
	}
	if out != "Fun \U00010319" {
		t.Errorf("got %q", out)
	}
	if len(out) != 8 {
		t.Errorf("got length %d, want 8", len(out))
	}
}

func TestForUCS4BESurrogateRejected(t *testing.T) {
	in := []byte{0x00, 0x00, 0x00, 'F', 0x00, 0x00, 0x00, 'u', 0x00, 0x00, 0x00, 'n',
		0x00, 0x00, 0x00, ' ', 0xD8, 0x00, 0xDF, 0x19}
	if _, ok := ForUCS4BE(in); ok {
		t.Fatal("expected surrogate code point to fail")
	}
}

func TestValidate(t *testing.T) {
	if !Validate([]byte("This is a test"), 14) {
		t.Error("expected valid")
	}
	if !Validate([]byte("Good news everyone"), -1) {
		t.Error("expected valid (NUL-terminated)")
	}
	if Validate([]byte("This is a test\x80"), 15) {
		t.Error("expected invalid (trailing continuation byte)")
	}
	if Validate([]byte("Truncated \xe0"), -1) {
		t.Error("expected invalid (truncated multi-byte sequence)")
	}
}
