package domain

import "time"

// User is the domain model for renters holding an account.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Gender       *string
	Dob          *string
	Address      *string
	Avatar       *string
	Favorites    []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileField names a user attribute that a profile update may modify.
type ProfileField string

const (
	ProfileName    ProfileField = "name"
	ProfilePhone   ProfileField = "phone"
	ProfileGender  ProfileField = "gender"
	ProfileDob     ProfileField = "dob"
	ProfileAddress ProfileField = "address"
	ProfileAvatar  ProfileField = "avatar"
)

// ProfileAllowList is the fixed set of fields a partial update may touch, in
// the order they are applied.
var ProfileAllowList = []ProfileField{
	ProfileName,
	ProfilePhone,
	ProfileGender,
	ProfileDob,
	ProfileAddress,
	ProfileAvatar,
}

// ProfileChanges holds the allow-listed fields of a partial update.
type ProfileChanges map[ProfileField]string

// FilterProfileFields keeps only allow-listed keys carrying string values.
// Anything else, including nulls, is dropped without error.
func FilterProfileFields(raw map[string]any) ProfileChanges {
	changes := make(ProfileChanges, len(ProfileAllowList))
	for _, field := range ProfileAllowList {
		val, ok := raw[string(field)]
		if !ok {
			continue
		}
		str, ok := val.(string)
		if !ok {
			continue
		}
		changes[field] = str
	}
	return changes
}

// ProfileFields returns the user's current allow-listed attributes. Unset
// optional attributes are omitted.
func (u *User) ProfileFields() map[string]any {
	fields := map[string]any{string(ProfileName): u.Name}
	optional := map[ProfileField]*string{
		ProfilePhone:   u.Phone,
		ProfileGender:  u.Gender,
		ProfileDob:     u.Dob,
		ProfileAddress: u.Address,
		ProfileAvatar:  u.Avatar,
	}
	for field, val := range optional {
		if val != nil {
			fields[string(field)] = *val
		}
	}
	return fields
}

// Apply copies changes onto the user. It does not touch UpdatedAt.
func (u *User) Apply(changes ProfileChanges) {
	for field, val := range changes {
		v := val
		switch field {
		case ProfileName:
			u.Name = v
		case ProfilePhone:
			u.Phone = &v
		case ProfileGender:
			u.Gender = &v
		case ProfileDob:
			u.Dob = &v
		case ProfileAddress:
			u.Address = &v
		case ProfileAvatar:
			u.Avatar = &v
		}
	}
}
