package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepairTextASCIIUntouched(t *testing.T) {
	assert.Equal(t, "hello there", RepairText("hello there"))
	assert.Equal(t, "", RepairText(""))
}

func TestRepairTextRecoversMojibake(t *testing.T) {
	// "é" serialized as UTF-8 then decoded as Latin-1 becomes "Ã©".
	assert.Equal(t, "é", RepairText("Ã©"))
	// Right single quote U+2019 mangles into three Latin-1 runes.
	assert.Equal(t, "’", RepairText("â"))
	// A full mangled sentence.
	assert.Equal(t, "José", RepairText("JosÃ©"))
}

func TestRepairTextInvalidBytesFallBack(t *testing.T) {
	// 0xFF alone is never valid UTF-8; the input comes back unchanged.
	assert.Equal(t, "ÿ", RepairText("ÿ"))
	// Truncated multi-byte sequence.
	assert.Equal(t, "aÃ", RepairText("aÃ"))
}

func TestRepairTextAlreadyDecodedFallsBack(t *testing.T) {
	// Runes above 0xFF mean the text is not a byte reinterpretation.
	assert.Equal(t, "こんにちは", RepairText("こんにちは"))
	assert.Equal(t, "mixed ’ text", RepairText("mixed ’ text"))
}
