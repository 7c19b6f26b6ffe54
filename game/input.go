package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/explore/events"
)

var keyMap = map[ebiten.Key]events.Key{
	ebiten.KeyArrowUp:    events.KeyUp,
	ebiten.KeyArrowRight: events.KeyRight,
	ebiten.KeyArrowDown:  events.KeyDown,
	ebiten.KeyArrowLeft:  events.KeyLeft,
	ebiten.KeySpace:      events.KeySpace,
	ebiten.KeyD:          events.KeyD,
	ebiten.KeyEscape:     events.KeyEscape,
}

// TranslateKey maps an ebiten key to the game's key set.
func TranslateKey(k ebiten.Key) events.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return events.KeyUnknown
}

// Input collects the keys pressed since the previous frame.
type Input struct {
	justPressed func([]ebiten.Key) []ebiten.Key

	raw  []ebiten.Key
	keys []events.Key
}

func NewInput() *Input {
	return &Input{justPressed: inpututil.AppendJustPressedKeys}
}

// Poll returns the keys that went down this frame. Keys the game does not
// use are dropped. The returned slice is reused by the next call.
func (in *Input) Poll() []events.Key {
	in.raw = in.justPressed(in.raw[:0])
	in.keys = in.keys[:0]
	for _, k := range in.raw {
		if key := TranslateKey(k); key != events.KeyUnknown {
			in.keys = append(in.keys, key)
		}
	}
	return in.keys
}
