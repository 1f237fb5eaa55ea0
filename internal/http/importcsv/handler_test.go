package importcsv_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgdesk/admin/internal/http/importcsv"
	"github.com/orgdesk/admin/internal/importer"
	"github.com/orgdesk/admin/internal/record"
	"github.com/orgdesk/admin/internal/transport"
)

type fakeImporter struct {
	format    importer.Format
	accountID record.ID
	content   string
	n         int
	err       error
}

func (f *fakeImporter) Import(_ context.Context, format importer.Format, r io.Reader, accountID record.ID) (int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	f.format, f.accountID, f.content = format, accountID, string(b)

	return f.n, f.err
}

func form(t *testing.T, fields map[string]string, file string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != "" {
		fw, err := mw.CreateFormFile("file", "statement.csv")
		require.NoError(t, err)
		_, err = io.WriteString(fw, file)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_Import(t *testing.T) {
	tests := []struct {
		name       string
		fields     map[string]string
		file       string
		importer   *fakeImporter
		wantStatus int
		wantFormat importer.Format
	}{
		{
			name:       "DefaultFormat",
			fields:     map[string]string{"account_id": "3"},
			file:       "Date,Description,Amount\n",
			importer:   &fakeImporter{n: 4},
			wantStatus: http.StatusCreated,
			wantFormat: importer.FormatStatement,
		},
		{
			name:       "ExplicitFormat",
			fields:     map[string]string{"account_id": "3", "format": "other"},
			file:       "x",
			importer:   &fakeImporter{err: importer.ErrUnknownFormat},
			wantStatus: http.StatusBadRequest,
			wantFormat: "other",
		},
		{
			name:       "BackendRejected",
			fields:     map[string]string{"account_id": "3"},
			file:       "x",
			importer:   &fakeImporter{err: &transport.Error{Kind: transport.KindTransport, Status: http.StatusForbidden}},
			wantStatus: http.StatusBadGateway,
			wantFormat: importer.FormatStatement,
		},
		{
			name:       "MissingAccount",
			file:       "x",
			importer:   &fakeImporter{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingFile",
			fields:     map[string]string{"account_id": "3"},
			importer:   &fakeImporter{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ParseFailure",
			fields:     map[string]string{"account_id": "3"},
			file:       "x",
			importer:   &fakeImporter{err: errors.New("parse statement: no matching profile")},
			wantStatus: http.StatusBadRequest,
			wantFormat: importer.FormatStatement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			r.Route("/import", importcsv.NewHandler(tt.importer).Routes)

			body, contentType := form(t, tt.fields, tt.file)
			req := httptest.NewRequest(http.MethodPost, "/import", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantFormat, tt.importer.format)

			if tt.wantStatus == http.StatusCreated {
				assert.JSONEq(t, `{"imported":4}`, rec.Body.String())
				assert.Equal(t, record.ID("3"), tt.importer.accountID)
				assert.Equal(t, tt.file, tt.importer.content)
			}
		})
	}
}
