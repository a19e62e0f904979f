// AngelaMos | 2026
// entity.go

package family

import (
	"time"
)

type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// FamilyMember is one person under a user's account. BandID is the
// member's half of the band↔member link; the band side holds the
// mirror pointer and the two are only ever written together by the
// band service.
type FamilyMember struct {
	ID                string             `json:"id"`
	FullName          string             `json:"fullName"`
	Age               int                `json:"age"`
	BloodGroup        string             `json:"bloodGroup"`
	Allergies         string             `json:"allergies"`
	MedicalCondition  string             `json:"medicalCondition"`
	HomeAddress       string             `json:"homeAddress"`
	Relationship      string             `json:"relationship"`
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	BandID            *string            `json:"bandId"`
	PrivacySettings   map[string]bool    `json:"privacySettings"`
	CreatedAt         time.Time          `json:"createdAt"`
}

func (m *FamilyMember) HasBand() bool {
	return m.BandID != nil && *m.BandID != ""
}

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

var Relationships = []string{
	"self", "spouse", "father", "mother", "son", "daughter",
	"brother", "sister", "grandfather", "grandmother", "uncle", "aunt",
	"other",
}

// PrivacyFields are the only keys a visibility map may carry. The
// default exposes identity and emergency data; medical and address
// details start private.
var PrivacyFields = []string{
	"fullName", "age", "bloodGroup", "allergies", "medicalCondition",
	"homeAddress", "emergencyContacts", "relationship",
}

func DefaultPrivacySettings() map[string]bool {
	return map[string]bool{
		"fullName":          true,
		"age":               true,
		"bloodGroup":        true,
		"allergies":         false,
		"medicalCondition":  false,
		"homeAddress":       false,
		"emergencyContacts": true,
		"relationship":      true,
	}
}

func ValidBloodGroup(bg string) bool {
	for _, g := range BloodGroups {
		if g == bg {
			return true
		}
	}
	return false
}

func ValidRelationship(rel string) bool {
	for _, r := range Relationships {
		if r == rel {
			return true
		}
	}
	return false
}

func ValidPrivacyField(field string) bool {
	for _, f := range PrivacyFields {
		if f == field {
			return true
		}
	}
	return false
}
