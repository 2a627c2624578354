package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newPet(level int, images Images) Pet {
	return Pet{ID: "1", Name: "Mochi", ThemeID: DefaultTheme, Level: level, Images: images}
}

// The helpers are called straight on returned values throughout the app.
func TestPetHelpersOnReturnedValues(t *testing.T) {
	assert.True(t, newPet(1, nil).MissingBaseline())
	assert.False(t, newPet(1, Images{1: "a.png"}).MissingBaseline())
	assert.True(t, newPet(MaxLevel, nil).IsMaxLevel())
	assert.False(t, newPet(MaxLevel-1, nil).IsMaxLevel())
	assert.Equal(t, "[ ]", Task{ID: 1, Text: "x"}.StatusMark())
}

func TestEffectiveImageFallback(t *testing.T) {
	images := Images{1: "one.png", 3: "three.png"}

	tests := []struct {
		level     int
		wantLevel int
		wantImage string
	}{
		{1, 1, "one.png"},
		{2, 1, "one.png"},
		{3, 3, "three.png"},
		{4, 3, "three.png"},
		{MaxLevel, 3, "three.png"},
	}

	for _, tt := range tests {
		level, image, ok := newPet(tt.level, images).EffectiveImage()
		assert.True(t, ok, "level %d", tt.level)
		assert.Equal(t, tt.wantLevel, level, "level %d", tt.level)
		assert.Equal(t, tt.wantImage, image, "level %d", tt.level)
	}

	_, _, ok := newPet(5, Images{6: "six.png"}).EffectiveImage()
	assert.False(t, ok)
}
