// AngelaMos | 2026
// dto.go

package family

type EmergencyContactInput struct {
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Phone    string `json:"phone"    validate:"required"`
	Relation string `json:"relation" validate:"required,max=50"`
}

type AddMemberRequest struct {
	FullName          string                  `json:"full_name"          validate:"required,min=1,max=100"`
	Age               int                     `json:"age"                validate:"gte=0,lte=150"`
	BloodGroup        string                  `json:"blood_group"        validate:"required"`
	Allergies         string                  `json:"allergies"          validate:"max=500"`
	MedicalCondition  string                  `json:"medical_condition"  validate:"max=500"`
	HomeAddress       string                  `json:"home_address"       validate:"required,max=500"`
	Relationship      string                  `json:"relationship"       validate:"required"`
	EmergencyContacts []EmergencyContactInput `json:"emergency_contacts" validate:"required,min=1,max=3,dive"`
}

type UpdateMemberRequest struct {
	FullName          *string                  `json:"full_name"          validate:"omitempty,min=1,max=100"`
	Age               *int                     `json:"age"                validate:"omitempty,gte=0,lte=150"`
	BloodGroup        *string                  `json:"blood_group"`
	Allergies         *string                  `json:"allergies"          validate:"omitempty,max=500"`
	MedicalCondition  *string                  `json:"medical_condition"  validate:"omitempty,max=500"`
	HomeAddress       *string                  `json:"home_address"       validate:"omitempty,max=500"`
	Relationship      *string                  `json:"relationship"`
	EmergencyContacts []EmergencyContactInput  `json:"emergency_contacts" validate:"omitempty,min=1,max=3,dive"`
}

type SetVisibilityRequest struct {
	Fields map[string]bool `json:"fields" validate:"required,min=1"`
}
