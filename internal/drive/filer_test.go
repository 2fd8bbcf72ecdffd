package drive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frousseau/sheetkeeper/internal/common"
	"github.com/frousseau/sheetkeeper/internal/react"
)

type mockAPI struct {
	foundFolder    string
	createdFolder  string
	uploadedName   string
	uploadedMIME   string
	uploadedParent string
	uploadErr      error
}

func (m *mockAPI) FindFolder(_ context.Context, _, _ string) (string, error) {
	return m.foundFolder, nil
}

func (m *mockAPI) CreateFolder(_ context.Context, _, name string) (string, error) {
	m.createdFolder = name
	return "created-folder-id", nil
}

func (m *mockAPI) UploadFile(_ context.Context, folderID, filename, mimeType string, _ []byte) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploadedParent = folderID
	m.uploadedName = filename
	m.uploadedMIME = mimeType
	return "https://drive.example/view/abc123", nil
}

func baseRequest() UploadRequest {
	return UploadRequest{
		WorkbookName: "Acme bookkeeping",
		Sheet:        "Expenses",
		Filename:     "Scan 001.PDF",
		MIMEType:     "application/pdf",
		Data:         []byte("%PDF-1.4"),
		Columns: map[string]int{
			"Date": 1, "Supplier": 2, "Description": 3, "Receipt": 4,
		},
		RowValues:    []any{"2024-03-09", "Office Depot", "Printer paper"},
		Row:          7,
		TargetColumn: 4,
	}
}

func TestUploadBuildsFilenameAndHyperlink(t *testing.T) {
	api := &mockAPI{foundFolder: "existing-folder"}
	filer := NewFiler(api, "root-folder", time.UTC)

	write, err := filer.Upload(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-09-office-depot-printer-paper.pdf", api.uploadedName)
	assert.Equal(t, "application/pdf", api.uploadedMIME)
	assert.Equal(t, "existing-folder", api.uploadedParent)
	assert.Empty(t, api.createdFolder, "existing folder is reused")

	assert.Equal(t, react.WriteFormula, write.Kind)
	assert.Equal(t, "Expenses!D7", write.Cell.String())
	assert.Equal(t,
		`=HYPERLINK("https://drive.example/view/abc123", "2024-03-09-office-depot-printer-paper.pdf")`,
		write.Value)
}

func TestUploadCreatesFolderWhenMissing(t *testing.T) {
	api := &mockAPI{}
	filer := NewFiler(api, "root-folder", time.UTC)

	_, err := filer.Upload(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, "Acme bookkeeping", api.createdFolder)
	assert.Equal(t, "created-folder-id", api.uploadedParent)
}

func TestUploadMissingDescription(t *testing.T) {
	api := &mockAPI{}
	filer := NewFiler(api, "root-folder", time.UTC)

	req := baseRequest()
	req.RowValues = []any{"2024-03-09", "Office Depot", ""}

	_, err := filer.Upload(context.Background(), req)
	require.Error(t, err)

	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "Please set description first", userErr.UserMessage)
	require.NotNil(t, userErr.Cell)
	assert.Equal(t, "Expenses!C7", userErr.Cell.String())
}

func TestUploadMissingDate(t *testing.T) {
	api := &mockAPI{}
	filer := NewFiler(api, "root-folder", time.UTC)

	req := baseRequest()
	req.RowValues = []any{"", "Office Depot", "Printer paper"}

	_, err := filer.Upload(context.Background(), req)
	require.Error(t, err)

	var userErr *common.UserError
	require.True(t, errors.As(err, &userErr))
	assert.Equal(t, "Please set date first", userErr.UserMessage)
	assert.Equal(t, "Expenses!A7", userErr.Cell.String())
}

func TestUploadRevenueRowWithoutSupplierColumn(t *testing.T) {
	api := &mockAPI{foundFolder: "f"}
	filer := NewFiler(api, "root", time.UTC)

	req := baseRequest()
	req.Sheet = "Revenues"
	req.Columns = map[string]int{"Date": 1, "Description": 2, "Receipt": 3}
	req.RowValues = []any{"2024-03-09", "March invoice"}
	req.TargetColumn = 3

	_, err := filer.Upload(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09-march-invoice.pdf", api.uploadedName)
}

func TestUploadPropagatesStorageFailure(t *testing.T) {
	api := &mockAPI{foundFolder: "f", uploadErr: errors.New("storage quota")}
	filer := NewFiler(api, "root", time.UTC)

	_, err := filer.Upload(context.Background(), baseRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage quota")
}
