package utils

import (
	"context"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadAvatar stores a profile picture on Cloudinary and returns the secure
// URL. Images are resized to a thumbnail at upload time.
func UploadAvatar(file interface{}, publicID string) (string, error) {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"))
	if err != nil {
		return "", err
	}

	resp, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "avatars",
		Transformation: "c_thumb,w_200,h_200",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
