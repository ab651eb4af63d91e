package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"guesthouse/config"
	"guesthouse/infras/otel/mocks"
	s3Mocks "guesthouse/infras/s3/mocks"
	documentMocks "guesthouse/internal/domains/document/mocks"
	"guesthouse/internal/domains/document/model"
	"guesthouse/internal/domains/document/model/dto"
	"guesthouse/internal/domains/document/service"
	cacheMocks "guesthouse/shared/cache/mocks"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const userID = "5d1c2e4a-8f7b-4c11-a3a0-2b9e7d6c1f00"

type fixture struct {
	svc   service.Document
	repo  *documentMocks.MockDocument
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  documentMocks.NewMockDocument(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.Upload.MaxDocumentSizeMB = 1

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func (f fixture) allowCache() {
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func userContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)
}

func staffContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func fileHeader(name string, size int64) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/pdf")

	return &multipart.FileHeader{Filename: name, Size: size, Header: header}
}

func TestDocumentService_Upload(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.UploadDocumentRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "stored under the dated directory",
			req:  dto.UploadDocumentRequest{Title: "Contract", FileType: model.TypeContract, File: fileHeader("contract.pdf", 2048)},
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), "", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _, directory string, _ multipart.File, _ *multipart.FileHeader, _ string) (string, error) {
						assert.True(t, strings.HasPrefix(directory, "documents/"))

						return "https://cdn.example.com/" + directory + "/a.pdf", nil
					})
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, doc model.Document) error {
					assert.Equal(t, userID, *doc.UploadedBy)
					assert.Equal(t, "application/pdf", doc.ContentType)
					assert.False(t, doc.IsPublic)

					return nil
				})
				f.allowCache()
			},
		},
		{
			name:     "too large",
			req:      dto.UploadDocumentRequest{Title: "Scan", File: fileHeader("scan.pdf", 2*1024*1024)},
			setup:    func(f fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "repository error removes the upload",
			req:  dto.UploadDocumentRequest{Title: "Receipt", File: fileHeader("receipt.pdf", 10)},
			setup: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/x.pdf", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "", gomock.Any(), gomock.Any()).Return(nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Upload(userContext(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "2.0 KB", res.Size)
			assert.True(t, res.IsPDF)
			assert.Equal(t, "pdf", res.Extension)
		})
	}
}

func TestDocumentService_Upload_WithoutUserAccount(t *testing.T) {
	f := newFixture(t)
	f.allowCache()

	f.s3.EXPECT().UploadFile(gomock.Any(), "", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/a.pdf", nil)
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, doc model.Document) error {
		assert.Nil(t, doc.UploadedBy)
		assert.Equal(t, constant.SystemUser, doc.CreatedBy)

		return nil
	})

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleSuperAdmin)

	_, err := f.svc.Upload(ctx, dto.UploadDocumentRequest{Title: "Import", File: fileHeader("import.pdf", 10)})
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestDocumentService_Get(t *testing.T) {
	owner, other := userID, "someone-else"

	tests := []struct {
		name     string
		ctx      context.Context
		doc      model.Document
		wantCode int
	}{
		{name: "public document", ctx: context.Background(), doc: model.Document{ID: "d-1", IsPublic: true}},
		{name: "own private document", ctx: userContext(), doc: model.Document{ID: "d-1", UploadedBy: &owner}},
		{name: "private document of someone else", ctx: userContext(), doc: model.Document{ID: "d-1", UploadedBy: &other}, wantCode: http.StatusNotFound},
		{name: "staff sees everything", ctx: staffContext(), doc: model.Document{ID: "d-1", UploadedBy: &other}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.allowCache()
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.doc, nil)

			res, err := f.svc.Get(tt.ctx, "d-1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "d-1", res.ID)
		})
	}
}

func TestDocumentService_GetAll_LimitsVisibility(t *testing.T) {
	f := newFixture(t)
	f.allowCache()

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
		where, args := filter.GetWhereClause()
		assert.Contains(t, where, "documents.is_public = :visible_public OR documents.uploaded_by = :visible_uploader")
		assert.Equal(t, userID, args["visible_uploader"])

		return 0, nil
	})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Document{}, nil)

	_, err := f.svc.GetAll(userContext(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.NewFilterGroup())
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestDocumentService_Delete(t *testing.T) {
	other := "someone-else"

	t.Run("uploader deletes row and file", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		owner := userID
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Document{ID: "d-1", File: "https://cdn.example.com/documents/2025/01/02/a.pdf", UploadedBy: &owner}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL("", "https://cdn.example.com/documents/2025/01/02/a.pdf").Return("documents/2025/01/02/a.pdf")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "documents/2025/01/02/a.pdf").Return(nil)

		err := f.svc.Delete(userContext(), "d-1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("someone else", func(t *testing.T) {
		f := newFixture(t)
		f.allowCache()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Document{ID: "d-1", UploadedBy: &other}, nil)

		err := f.svc.Delete(userContext(), "d-1")
		time.Sleep(10 * time.Millisecond)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestDocumentService_Update(t *testing.T) {
	f := newFixture(t)
	f.allowCache()
	public := true

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Document{ID: "d-1"}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, &public, fields[model.FieldIsPublic])
			assert.Equal(t, "Signed contract", fields[model.FieldTitle])

			return nil
		})

	err := f.svc.Update(staffContext(), dto.UpdateDocumentRequest{Title: "Signed contract", IsPublic: &public}, "d-1")
	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}
