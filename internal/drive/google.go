package drive

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

const folderMIMEType = "application/vnd.google-apps.folder"

// GoogleAPI implements API on the Drive v3 service.
type GoogleAPI struct {
	service *drive.Service
}

// NewGoogleAPI wraps an authenticated Drive service.
func NewGoogleAPI(service *drive.Service) *GoogleAPI {
	return &GoogleAPI{service: service}
}

// FindFolder implements API.
func (g *GoogleAPI) FindFolder(ctx context.Context, parentID, name string) (string, error) {
	query := fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		escapeQuery(name), parentID, folderMIMEType)

	list, err := g.service.Files.List().
		Q(query).
		Fields("files(id)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("folder query failed: %w", err)
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

// CreateFolder implements API.
func (g *GoogleAPI) CreateFolder(ctx context.Context, parentID, name string) (string, error) {
	folder, err := g.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: folderMIMEType,
		Parents:  []string{parentID},
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("folder creation failed: %w", err)
	}
	return folder.Id, nil
}

// UploadFile implements API.
func (g *GoogleAPI) UploadFile(ctx context.Context, folderID, filename, mimeType string, data []byte) (string, error) {
	file, err := g.service.Files.Create(&drive.File{
		Name:    filename,
		Parents: []string{folderID},
	}).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return file.WebViewLink, nil
}

// escapeQuery escapes single quotes for Drive query strings.
func escapeQuery(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '\'' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
