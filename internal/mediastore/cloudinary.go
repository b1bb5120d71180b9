// Package mediastore wraps the media CDN used for server-side image
// transformations: background removal on upload, and generative object
// removal as a derived URL from an already-stored asset.
package mediastore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const uploadFolder = "quickai"

type Client struct {
	cld *cloudinary.Cloudinary
}

func NewClient(cloudName, apiKey, apiSecret string) (*Client, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &Client{cld: cld}, nil
}

// UploadImage stores the image without transformations and returns its
// public ID and delivery URL.
func (c *Client) UploadImage(ctx context.Context, data []byte) (string, string, error) {
	return c.upload(ctx, data, "")
}

// UploadBackgroundRemoval stores the image with the background-removal
// effect applied by the store during upload.
func (c *Client) UploadBackgroundRemoval(ctx context.Context, data []byte) (string, string, error) {
	return c.upload(ctx, data, "e_background_removal")
}

func (c *Client) upload(ctx context.Context, data []byte, transformation string) (string, string, error) {
	resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:         uploadFolder,
		Transformation: transformation,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}
	if resp.PublicID == "" || resp.SecureURL == "" {
		return "", "", fmt.Errorf("upload response missing public_id or secure_url")
	}
	return resp.PublicID, resp.SecureURL, nil
}

// ObjectRemovalURL builds a derived delivery URL for the stored asset
// with the named object generatively removed. No second upload happens;
// the store renders the transformation on first request.
func (c *Client) ObjectRemovalURL(publicID, object string) (string, error) {
	img, err := c.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build image asset: %w", err)
	}
	img.Transformation = fmt.Sprintf("e_gen_remove:prompt_%s", object)
	url, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build transformation url: %w", err)
	}
	return url, nil
}

// Destroy deletes a stored asset. Used as the compensating action when
// persistence fails after a successful upload.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	_, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("failed to destroy asset %s: %w", publicID, err)
	}
	return nil
}
