package services

import "testing"

func TestValidateAvatar(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"jpeg within the cap", "me.jpg", 1024, false},
		{"uppercase extension", "ME.PNG", 1024, false},
		{"webp at the cap", "me.webp", MaxAvatarSize, false},
		{"one byte over the cap", "me.png", MaxAvatarSize + 1, true},
		{"unsupported extension", "me.bmp", 1024, true},
		{"no extension", "avatar", 1024, true},
	}

	for _, tt := range tests {
		err := ValidateAvatar(tt.filename, tt.size)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateAvatar(%q, %d) error = %v, wantErr %v",
				tt.name, tt.filename, tt.size, err, tt.wantErr)
		}
	}
}
