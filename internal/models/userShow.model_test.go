package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidListType(t *testing.T) {
	valid := []ListType{ListPlanToWatch, ListWatching, ListCompleted, ListDropped, ListOnHold}
	for _, listType := range valid {
		assert.True(t, ValidListType(listType), string(listType))
	}

	assert.False(t, ValidListType("Binging"))
	assert.False(t, ValidListType(""))
	assert.False(t, ValidListType("watching"), "list types are case sensitive")
}

func TestUserShowBeforeSave(t *testing.T) {
	listType := ListWatching
	badType := ListType("Binging")
	goodScore := 8
	lowScore := -1
	highScore := 11

	tests := []struct {
		name      string
		show      UserShow
		wantError bool
	}{
		{"empty record", UserShow{}, false},
		{"valid list and score", UserShow{ListType: &listType, Score: &goodScore}, false},
		{"unknown list type", UserShow{ListType: &badType}, true},
		{"score below range", UserShow{Score: &lowScore}, true},
		{"score above range", UserShow{Score: &highScore}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.show.BeforeSave(nil)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
