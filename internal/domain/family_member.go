package domain

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// SentinelMemberName is the reserved member representing the account owner.
// Transactions with an empty member field belong to it, and it is the
// reassignment target when a real member is deleted.
const SentinelMemberName = "Me"

// FamilyMember is a household member transactions can be attributed to.
// Names are case-insensitively unique within a user's data.
type FamilyMember struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

// SentinelMember returns the implicit, undeletable "Me" member. It carries
// id 0, which no user-created member ever receives.
func SentinelMember() FamilyMember {
	return FamilyMember{ID: 0, Name: SentinelMemberName, Gender: GenderOther}
}

// ValidGender reports whether g is one of the three accepted values.
func ValidGender(g Gender) bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}
