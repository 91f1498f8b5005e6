package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxAvatarSize caps avatar uploads at 5 MB
const MaxAvatarSize = 5 << 20

var avatarExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AvatarService stores profile pictures in Cloudinary
type AvatarService struct {
	cld *cloudinary.Cloudinary
}

func NewAvatarService() (*AvatarService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("missing Cloudinary configuration")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &AvatarService{cld: cld}, nil
}

// ValidateAvatar rejects uploads that are not images or exceed the size cap
func ValidateAvatar(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !avatarExtensions[ext] {
		return fmt.Errorf("invalid file type: %s. Allowed types: jpg, jpeg, png, gif, webp", ext)
	}
	if size > MaxAvatarSize {
		return fmt.Errorf("file too large: %d bytes (max %d bytes)", size, MaxAvatarSize)
	}
	return nil
}

// Upload stores the avatar under a per-user public ID so a new upload
// replaces the previous one, cropped to a square around the face.
func (s *AvatarService) Upload(file multipart.File, username string) (string, error) {
	overwrite := true
	result, err := s.cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		PublicID:       fmt.Sprintf("avatars/user_%s", username),
		Folder:         "wellspring/avatars",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Transformation: "c_fill,g_face,h_300,w_300/q_auto,f_auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	return result.SecureURL, nil
}
