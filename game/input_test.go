package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/explore/events"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   ebiten.Key
		want events.Key
	}{
		{ebiten.KeyArrowUp, events.KeyUp},
		{ebiten.KeyArrowRight, events.KeyRight},
		{ebiten.KeyArrowDown, events.KeyDown},
		{ebiten.KeyArrowLeft, events.KeyLeft},
		{ebiten.KeySpace, events.KeySpace},
		{ebiten.KeyD, events.KeyD},
		{ebiten.KeyEscape, events.KeyEscape},
		{ebiten.KeyQ, events.KeyUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TranslateKey(tt.in), "key %s", tt.in)
	}
}

func TestInputPoll(t *testing.T) {
	in := NewInput()
	pressed := []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyQ, ebiten.KeySpace}
	in.justPressed = func(buf []ebiten.Key) []ebiten.Key {
		return append(buf, pressed...)
	}

	assert.Equal(t, []events.Key{events.KeyLeft, events.KeySpace}, in.Poll())

	pressed = nil
	assert.Empty(t, in.Poll())
}
