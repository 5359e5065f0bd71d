package models

import (
	"testing"

	"codetidbit/internal/apperrors"
)

const validHexID = "507f1f77bcf86cd799439011"

func TestContentPointer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pointer ContentPointer
		valid   bool
	}{
		{"snipbit", ContentPointer{Type: ContentSnipbit, TargetID: validHexID}, true},
		{"bigbit", ContentPointer{Type: ContentBigbit, TargetID: validHexID}, true},
		{"story", ContentPointer{Type: ContentStory, TargetID: validHexID}, true},
		{"unknown type", ContentPointer{Type: 9, TargetID: validHexID}, false},
		{"malformed id", ContentPointer{Type: ContentSnipbit, TargetID: "not-hex"}, false},
		{"empty id", ContentPointer{Type: ContentSnipbit}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pointer.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestTidbitPointer_Validate_RejectsStories(t *testing.T) {
	pointer := TidbitPointer{Type: ContentStory, TargetID: validHexID}
	err := pointer.Validate()
	if err == nil {
		t.Fatal("Expected error for story type in tidbit pointer")
	}
	appErr, ok := err.(*apperrors.Error)
	if !ok || appErr.Code != apperrors.ErrInvalidTidbitPointer {
		t.Errorf("Expected tidbit pointer code, got %v", err)
	}
}

func TestPointerEquals(t *testing.T) {
	a := ContentPointer{Type: ContentSnipbit, TargetID: validHexID}
	b := ContentPointer{Type: ContentSnipbit, TargetID: validHexID}
	c := ContentPointer{Type: ContentBigbit, TargetID: validHexID}
	d := ContentPointer{Type: ContentSnipbit, TargetID: "507f1f77bcf86cd799439012"}

	if !a.Equals(b) {
		t.Error("Expected identical pointers to be equal")
	}
	if a.Equals(c) {
		t.Error("Expected different types to differ")
	}
	if a.Equals(d) {
		t.Error("Expected different IDs to differ")
	}
}

func TestTidbitPointer_ContentPointer(t *testing.T) {
	tp := TidbitPointer{Type: ContentBigbit, TargetID: validHexID}
	cp := tp.ContentPointer()
	if cp.Type != ContentBigbit || cp.TargetID != validHexID {
		t.Errorf("Unexpected widened pointer: %+v", cp)
	}
}

func TestContentType_IsTidbit(t *testing.T) {
	if !ContentSnipbit.IsTidbit() || !ContentBigbit.IsTidbit() {
		t.Error("Expected snipbit and bigbit to be tidbits")
	}
	if ContentStory.IsTidbit() {
		t.Error("Expected story not to be a tidbit")
	}
}

func TestValidateTags(t *testing.T) {
	if err := validateTags([]string{"elm", "decoders"}); err != nil {
		t.Errorf("Expected valid tags, got %v", err)
	}

	if err := validateTags(nil); err == nil {
		t.Error("Expected error for no tags")
	}

	nine := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	if err := validateTags(nine); err == nil {
		t.Error("Expected error for more than 8 tags")
	}

	if err := validateTags([]string{"ok", ""}); err == nil {
		t.Error("Expected error for empty tag")
	}
}
