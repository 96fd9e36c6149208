package profile

import "github.com/healthsense/healthsense/internal/types"

// Built-in avatar art as data URIs, grouped by gender. Users who skip the
// photo step during onboarding get one of these assigned deterministically.
var (
	femaleAvatars = []string{
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iI2U5MWU2MyIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzljMjdiMCIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzY3M2FiNyIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iI2Y0NDMzNiIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
	}
	maleAvatars = []string{
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzIxOTZmMyIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzRjYWY1MCIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzAwOTY4OCIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzAzYTlmNCIvPjxjaXJjbGUgY3g9IjUwIiBjeT0iNDAiIHI9IjE1IiBmaWxsPSJ3aGl0ZSIvPjxwYXRoIGQ9Ik01MCA1OCBBIDIwIDIwIDAgMCAwIDMwIDc4IEwgNzAgNzggQSAyMCAyMCAwIDAgMCA1MCA1OCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
	}
	otherAvatars = []string{
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzc5NTU0OCIvPjxyZWN0IHg9IjMwIiB5PSIzMCIgd2lkdGg9IjQwIiBoZWlnaHQ9IjQwIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzllOWU5ZSIvPjxwYXRoIGQ9Ik01MCAzMCBMIDcwIDcwIEwgMzAgNzAgWiIgZmlsbD0id2hpdGUiLz48L3N2Zz4=",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iI2ZmYzEwNyIvPjxwYXRoIGQ9Ik00NSAzMCBIIDU1IFYgNDUgSCA3MCBWIDU1IEggNTUgViA3MCBIIDQ1IFYgNTUgSCAzMCBWIDQ1IEggNDUgWiIgZmlsbD0id2hpdGUiLz48L3N2Zz4=",
		"data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAxMDAgMTAwIj48Y2lyY2xlIGN4PSI1MCIgY3k9IjUwIiByPSI1MCIgZmlsbD0iIzYwN2Q4YiIvPjxwYXRoIGQ9Ik01MCAyNSBMIDc1IDUwIEwgNTAgNzUgTCAyNSA1MCBaIiBmaWxsPSJ3aGl0ZSIvPjwvc3ZnPg==",
	}
)

// AvatarSet returns the avatar candidates for a gender. Unknown genders
// fall through to the neutral set.
func AvatarSet(gender types.Gender) []string {
	switch gender {
	case types.GenderFemale:
		return femaleAvatars
	case types.GenderMale:
		return maleAvatars
	default:
		return otherAvatars
	}
}

// PickAvatar deterministically selects an avatar for a user who did not
// supply a photo. The same name, age, and gender always yield the same
// avatar, so the choice survives restarts without being stored separately.
func PickAvatar(name, age string, gender types.Gender) string {
	set := AvatarSet(gender)
	key := name + age

	// 32-bit rolling string hash; overflow wraps like the djb2 family
	var hash int32
	for _, r := range key {
		hash = int32(r) + ((hash << 5) - hash)
	}
	index := int(hash)
	if index < 0 {
		index = -index
	}
	return set[index%len(set)]
}
