package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/matcheat/internal/netx"
	"github.com/google/uuid"
)

// uploadToPresignedURL is a test seam for netx.UploadToPresignedURL.
var uploadToPresignedURL = netx.UploadToPresignedURL

// Upload sends a local file to object storage and prints its public URL.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: upload <file>", errUsage)
	}
	url, err := a.uploadFile(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, url)
	return nil
}

// askImage reads an image reference. A path to an existing local file is
// uploaded and replaced by its public URL.
func (a *App) askImage(ctx context.Context) (string, error) {
	image, err := a.ask("Enter image URL or path to a local file")
	if err != nil {
		return "", err
	}
	if fi, err := os.Stat(image); err == nil && !fi.IsDir() {
		return a.uploadFile(ctx, image)
	}
	return image, nil
}

func (a *App) uploadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("file is empty")
	}

	ext := strings.ToLower(filepath.Ext(path))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	target, err := a.api.UploadURL(ctx, uuid.NewString()+ext, contentType)
	if err != nil {
		return "", err
	}
	if err := uploadToPresignedURL(ctx, a.api.HTTPClient(), target.SignedRequest, contentType, data); err != nil {
		return "", err
	}
	return target.URL, nil
}
