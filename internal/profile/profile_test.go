package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthsense/healthsense/internal/types"
)

func TestPickAvatar_Deterministic(t *testing.T) {
	first := PickAvatar("Maria", "29", types.GenderFemale)
	second := PickAvatar("Maria", "29", types.GenderFemale)

	assert.Equal(t, first, second)
	assert.Contains(t, femaleAvatars, first)
}

func TestPickAvatar_VariesWithIdentity(t *testing.T) {
	// The hash must actually depend on its inputs: across a spread of
	// names at least two different avatars get picked.
	names := []string{"Maria", "Bob", "Charlie", "Dana", "Elena", "Frank"}
	picked := make(map[string]bool)
	for _, name := range names {
		picked[PickAvatar(name, "29", types.GenderFemale)] = true
	}
	assert.Greater(t, len(picked), 1)
}

func TestPickAvatar_UsesGenderSet(t *testing.T) {
	assert.Contains(t, maleAvatars, PickAvatar("Maria", "29", types.GenderMale))
	assert.Contains(t, femaleAvatars, PickAvatar("Maria", "29", types.GenderFemale))
	assert.Contains(t, otherAvatars, PickAvatar("Maria", "29", types.GenderOther))
	// Unknown genders fall through to the neutral set
	assert.Contains(t, otherAvatars, PickAvatar("Maria", "29", types.Gender("unspecified")))
}

func TestAvatarSet_Sizes(t *testing.T) {
	require.Len(t, AvatarSet(types.GenderFemale), 4)
	require.Len(t, AvatarSet(types.GenderMale), 4)
	require.Len(t, AvatarSet(types.GenderOther), 4)
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile types.UserProfile
		want    string
	}{
		{"capitalizes", types.UserProfile{Name: "maria"}, "Maria"},
		{"already capitalized", types.UserProfile{Name: "Maria"}, "Maria"},
		{"empty falls back", types.UserProfile{}, "User"},
		{"whitespace falls back", types.UserProfile{Name: "   "}, "User"},
		{"rest untouched", types.UserProfile{Name: "maria lopez"}, "Maria lopez"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.profile))
		})
	}
}

func TestDerivedEmail(t *testing.T) {
	assert.Equal(t, "maria@example.com", DerivedEmail(types.UserProfile{Name: "Maria"}))
	assert.Equal(t, "maria.lopez@example.com", DerivedEmail(types.UserProfile{Name: "Maria Lopez"}))
	assert.Equal(t, "user@example.com", DerivedEmail(types.UserProfile{}))
}

func TestPhoto_FallsBackToAvatar(t *testing.T) {
	withPhoto := types.UserProfile{Name: "Maria", Age: "29", Gender: types.GenderFemale, Photo: "data:image/png;base64,abc"}
	assert.Equal(t, "data:image/png;base64,abc", Photo(withPhoto))

	noPhoto := types.UserProfile{Name: "Maria", Age: "29", Gender: types.GenderFemale}
	assert.Equal(t, PickAvatar("Maria", "29", types.GenderFemale), Photo(noPhoto))
}
