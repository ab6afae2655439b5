package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Urethramancer/m68kcore/internal/translate"
)

func TestSprintfFormatsArguments(t *testing.T) {
	s := translate.Sprintf("%d bytes from %s", 12, "image.bin")
	assert.Contains(t, s, "12")
	assert.Contains(t, s, "image.bin")
}

func TestPrinterIsShared(t *testing.T) {
	assert.NotNil(t, translate.Printer())
	assert.Same(t, translate.Printer(), translate.Printer())
}
