package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterProfileFields(t *testing.T) {
	changes := FilterProfileFields(map[string]any{
		"name":      "Amy",
		"phone":     "5551234",
		"email":     "other@x.com",
		"favorites": []any{"p1"},
		"dob":       nil,
		"avatar":    12,
	})

	assert.Equal(t, ProfileChanges{
		ProfileName:  "Amy",
		ProfilePhone: "5551234",
	}, changes)
}

func TestProfileAllowList(t *testing.T) {
	assert.ElementsMatch(t,
		[]ProfileField{"name", "phone", "gender", "dob", "address", "avatar"},
		ProfileAllowList)
}

func TestUserProfileFieldsRoundTrip(t *testing.T) {
	phone := "5551234"
	u := &User{Name: "Amy", Email: "amy@x.com", Phone: &phone}

	fields := u.ProfileFields()
	assert.Equal(t, map[string]any{"name": "Amy", "phone": "5551234"}, fields)

	var copyUser User
	copyUser.Apply(FilterProfileFields(fields))
	assert.Equal(t, "Amy", copyUser.Name)
	assert.Equal(t, "5551234", *copyUser.Phone)
	assert.Nil(t, copyUser.Avatar)
	assert.Empty(t, copyUser.Email)
}
