package pets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/habitpet/internal/model"
)

func TestInitial(t *testing.T) {
	r := Initial()
	require.Len(t, r.Pets, 1)
	assert.Equal(t, "1", r.ActiveID)
	assert.Equal(t, 1, r.Active().Level)
	assert.Equal(t, model.ThemeCream, r.Active().ThemeID)
}

func TestCreate(t *testing.T) {
	r, pet := Initial().Create()
	require.Len(t, r.Pets, 2)
	assert.Equal(t, pet.ID, r.ActiveID)
	assert.Equal(t, "New Friend 2", pet.Name)
	assert.Equal(t, model.DefaultTheme, pet.ThemeID)
	assert.Empty(t, pet.Images)
	assert.Equal(t, model.DefaultDialogues(), pet.Dialogues)
	assert.Equal(t, 1, pet.Level)
	assert.Zero(t, pet.CurrentXP)

	r, second := r.Create()
	assert.NotEqual(t, pet.ID, second.ID)
	assert.Equal(t, "New Friend 3", second.Name)
}

func TestCreate_DefaultNameAvoidsCollision(t *testing.T) {
	r, _ := Initial().Create()
	r, _ = r.Create()
	// Drop "New Friend 2" so the roster size points back at a taken name.
	r, err := r.Delete(r.Pets[1].ID)
	require.NoError(t, err)
	require.Len(t, r.Pets, 2)
	assert.Equal(t, "New Friend 3", r.Pets[1].Name)

	_, pet := r.Create()
	assert.Equal(t, "New Friend 4", pet.Name)
}

func TestDelete_LastPetRejected(t *testing.T) {
	r := Initial()
	out, err := r.Delete("1")
	assert.ErrorIs(t, err, ErrLastPet)
	assert.Len(t, out.Pets, 1)
	assert.Equal(t, r, out)
}

func TestDelete_ActiveMovesToFirst(t *testing.T) {
	r, a := Initial().Create()
	r, b := r.Create()
	require.Equal(t, b.ID, r.ActiveID)

	r, err := r.Delete(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "1", r.ActiveID)
	assert.Equal(t, -1, r.Find(b.ID))

	r, err = r.Switch(a.ID)
	require.NoError(t, err)
	r, err = r.Delete("1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, r.ActiveID, "deleting an inactive pet keeps the pointer")
}

func TestDelete_NotFound(t *testing.T) {
	r, _ := Initial().Create()
	_, err := r.Delete("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSwitch(t *testing.T) {
	r, _ := Initial().Create()
	r, err := r.Switch("1")
	require.NoError(t, err)
	assert.Equal(t, "1", r.Active().ID)

	_, err = r.Switch("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActive_DanglingPointer(t *testing.T) {
	r := Initial()
	r.ActiveID = "gone"
	assert.Equal(t, "1", r.Active().ID)
	assert.Equal(t, "1", r.Resolve().ActiveID)

	assert.Equal(t, Initial(), Roster{}.Resolve())
}

func TestSetArtwork_OneSlot(t *testing.T) {
	r := Initial()
	r, err := r.SetArtwork("1", 1, "one")
	require.NoError(t, err)
	r, err = r.SetArtwork("1", 3, "three")
	require.NoError(t, err)
	r, err = r.SetArtwork("1", 3, "three-b")
	require.NoError(t, err)

	p := r.Active()
	assert.Equal(t, model.Images{1: "one", 3: "three-b"}, p.Images)

	r, err = r.ClearArtwork("1", 1)
	require.NoError(t, err)
	assert.True(t, r.Active().MissingBaseline())

	_, err = r.SetArtwork("1", 0, "x")
	assert.ErrorIs(t, err, ErrInvalidLevel)
	_, err = r.SetArtwork("1", model.MaxLevel+1, "x")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestSetArtwork_DoesNotLeakIntoSnapshot(t *testing.T) {
	before := Initial()
	after, err := before.SetArtwork("1", 2, "two")
	require.NoError(t, err)
	assert.Empty(t, before.Pets[0].Images)
	assert.Len(t, after.Pets[0].Images, 1)
}

func TestEffectiveImageFallback(t *testing.T) {
	p := model.Pet{Level: 1, Images: model.Images{1: "one", 3: "three"}}

	tests := []struct {
		level     int
		wantLevel int
		want      string
	}{
		{1, 1, "one"},
		{2, 1, "one"},
		{3, 3, "three"},
		{4, 3, "three"},
		{model.MaxLevel, 3, "three"},
	}
	for _, tt := range tests {
		l, img, ok := p.ImageAt(tt.level)
		assert.True(t, ok)
		assert.Equal(t, tt.wantLevel, l)
		assert.Equal(t, tt.want, img)
	}

	none := model.Pet{Level: 5}
	_, _, ok := none.EffectiveImage()
	assert.False(t, ok)
}

func TestSetters(t *testing.T) {
	r := Initial()
	r, err := r.SetName("1", "Pudding")
	require.NoError(t, err)
	r, err = r.SetTheme("1", model.ThemeMint)
	require.NoError(t, err)
	r, err = r.SetDialogueLines("1", model.MoodSad, []string{"oh no"})
	require.NoError(t, err)

	p := r.Active()
	assert.Equal(t, "Pudding", p.Name)
	assert.Equal(t, model.ThemeMint, p.ThemeID)
	assert.Equal(t, []string{"oh no"}, p.Dialogues.Sad)
	assert.Equal(t, model.DefaultDialogues().Happy, p.Dialogues.Happy)

	_, err = r.SetTheme("1", "neon")
	assert.ErrorIs(t, err, ErrInvalidTheme)
	_, err = r.SetDialogueLines("1", "angry", nil)
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	r := Initial()
	r, _ = r.SetProgress("1", 7, 321)
	r, _ = r.SetArtwork("1", 2, "data:image/png;base64,AAAA")
	r, _ = r.SetTheme("1", model.ThemeLavender)

	data, err := r.Export("1")
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, float64(7), fields["level"])
	assert.Equal(t, float64(321), fields["currentXP"])
	assert.NotContains(t, fields, "id")

	out, pet, err := r.Import(data)
	require.NoError(t, err)
	require.Len(t, out.Pets, 2)
	assert.Equal(t, pet.ID, out.ActiveID)
	assert.NotEqual(t, "1", pet.ID)
	assert.Equal(t, 1, pet.Level, "imported pets start over")
	assert.Zero(t, pet.CurrentXP)
	assert.Equal(t, "Mochi", pet.Name)
	assert.Equal(t, model.ThemeLavender, pet.ThemeID)
	assert.Equal(t, model.Images{2: "data:image/png;base64,AAAA"}, pet.Images)
	assert.Equal(t, model.DefaultDialogues(), pet.Dialogues)
}

func TestImport_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing dialogues", `{"name":"Bo"}`},
		{"missing name", `{"dialogues":{"normal":["hi"]}}`},
		{"null dialogues", `{"name":"Bo","dialogues":null}`},
		{"not json", `hello`},
		{"array", `[1,2]`},
		{"wrong type", `{"name":3,"dialogues":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Initial()
			out, _, err := r.Import([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedImport)
			var ie *ImportError
			assert.ErrorAs(t, err, &ie)
			assert.Equal(t, r, out)
		})
	}
}

func TestImport_DefaultsAndLegacyImage(t *testing.T) {
	data := `{"name":"Old","image":"legacy.png","themeId":"neon","level":9,"dialogues":{"happy":["yay"]}}`
	_, pet, err := Initial().Import([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTheme, pet.ThemeID)
	assert.Equal(t, model.Images{1: "legacy.png"}, pet.Images)
	assert.Equal(t, []string{"yay"}, pet.Dialogues.Happy)
	assert.Empty(t, pet.Dialogues.Normal)
	assert.Equal(t, 1, pet.Level)
}

func TestArtworkFromBytes(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	uri, err := ArtworkFromBytes(png)
	require.NoError(t, err)
	assert.Contains(t, uri, "data:image/png;base64,")

	_, err = ArtworkFromBytes(nil)
	assert.ErrorIs(t, err, ErrEmptyArtwork)

	_, err = ArtworkFromBytes([]byte("just text"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}
