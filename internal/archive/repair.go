package archive

import "unicode/utf8"

// RepairText undoes the mojibake produced when a UTF-8 byte stream is decoded
// as Latin-1 (Messenger exports do this to every text field). Each rune of the
// input stands for one raw byte; the recovered byte sequence is returned when
// it forms valid UTF-8, otherwise the input comes back unchanged.
//
// Re-applying RepairText to already-correct multi-byte text corrupts it, so
// the loader is the only caller and runs it exactly once per field.
func RepairText(s string) string {
	if s == "" {
		return s
	}
	buf := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			// Not a byte-for-byte reinterpretation; already decoded text.
			return s
		}
		buf = append(buf, byte(r))
	}
	if !utf8.Valid(buf) {
		return s
	}
	return string(buf)
}
