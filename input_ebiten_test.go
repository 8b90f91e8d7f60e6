//go:build !headless

package zeni

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

func TestTranslateKey(t *testing.T) {
	assert.Equal(t, KeyA, translateKey(ebiten.KeyA))
	assert.Equal(t, KeyZ, translateKey(ebiten.KeyZ))
	assert.Equal(t, Key7, translateKey(ebiten.KeyDigit7))
	assert.Equal(t, KeyEnter, translateKey(ebiten.KeyNumpadEnter))
	assert.Equal(t, KeyUp, translateKey(ebiten.KeyArrowUp))
	assert.Equal(t, KeyF12, translateKey(ebiten.KeyF12))
	assert.Equal(t, KeyUnknown, translateKey(ebiten.KeyF24))
	assert.Equal(t, KeyUnknown, translateKey(ebiten.KeyNumpad5))
}

func TestTranslateKey_CoversEveryEngineKey(t *testing.T) {
	seen := make(map[Key]bool)
	for _, k := range ebitenKeys {
		seen[k] = true
	}
	for k := KeyA; k < keyCount; k++ {
		assert.True(t, seen[k], "no ebiten key maps to %s", k)
	}
}
