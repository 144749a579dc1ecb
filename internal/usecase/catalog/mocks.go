package catalog

import (
	"context"
	"io"
	"time"

	"github.com/fiveflix/videos-ms-go/internal/model"
	"github.com/fiveflix/videos-ms-go/internal/port"
)

type mockVideoRepo struct {
	videoRecord *model.Video
	listRecords []model.Video

	getErr    error
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	getCalled    bool
	listCalled   bool
	deleteCalled bool
	created      *model.Video
	updated      *model.Video
	deletedID    int64
}

var _ port.VideoRepository = (*mockVideoRepo)(nil)

func (m *mockVideoRepo) Create(ctx context.Context, video *model.Video) error {
	m.created = video
	if m.createErr != nil {
		return m.createErr
	}
	video.ID = 42
	return nil
}
func (m *mockVideoRepo) Update(ctx context.Context, video *model.Video) error {
	m.updated = video
	return m.updateErr
}
func (m *mockVideoRepo) Delete(ctx context.Context, id int64) error {
	m.deleteCalled = true
	m.deletedID = id
	return m.deleteErr
}
func (m *mockVideoRepo) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	m.getCalled = true
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.videoRecord, nil
}
func (m *mockVideoRepo) List(ctx context.Context, featuredOnly bool) ([]model.Video, error) {
	m.listCalled = true
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.listRecords, nil
}

type mockStorage struct {
	fileExists bool
	statInfo   port.FileInfo
	presignURL string

	existsErr          error
	statErr            error
	removeErr          error
	saveErr            error
	presignDownloadErr error
	presignUploadErr   error

	existsCalled          bool
	saveCalled            bool
	presignDownloadCalled int
	presignUploadCalled   int

	savedKeys       []string
	savedMimes      []string
	removedKeys     []string
	presignedKeys   []string
	presignedTTLs   []time.Duration
	presignedOpts   []port.DownloadOptions
	uploadKeys      []string
	uploadMimes     []string
	existsCheckKeys []string
}

var _ port.Storage = (*mockStorage)(nil)

func (m *mockStorage) InitBucket() error { return nil }
func (m *mockStorage) FileExists(ctx context.Context, fileKey string) (bool, error) {
	m.existsCalled = true
	m.existsCheckKeys = append(m.existsCheckKeys, fileKey)
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.fileExists, nil
}
func (m *mockStorage) StatFile(ctx context.Context, fileKey string) (port.FileInfo, error) {
	if m.statErr != nil {
		return port.FileInfo{}, m.statErr
	}
	return m.statInfo, nil
}
func (m *mockStorage) RemoveFile(ctx context.Context, fileKey string) (bool, error) {
	m.removedKeys = append(m.removedKeys, fileKey)
	if m.removeErr != nil {
		return false, m.removeErr
	}
	return true, nil
}
func (m *mockStorage) SaveFile(ctx context.Context, fileKey string, reader io.Reader, fileSize int64, contentType string) error {
	m.saveCalled = true
	m.savedKeys = append(m.savedKeys, fileKey)
	m.savedMimes = append(m.savedMimes, contentType)
	return m.saveErr
}
func (m *mockStorage) PresignDownload(ctx context.Context, fileKey string, ttl time.Duration, opts port.DownloadOptions) (string, error) {
	m.presignDownloadCalled++
	m.presignedKeys = append(m.presignedKeys, fileKey)
	m.presignedTTLs = append(m.presignedTTLs, ttl)
	m.presignedOpts = append(m.presignedOpts, opts)
	if m.presignDownloadErr != nil {
		return "", m.presignDownloadErr
	}
	if m.presignURL != "" {
		return m.presignURL, nil
	}
	return "https://s3.example.com/" + fileKey + "?signed", nil
}
func (m *mockStorage) PresignUpload(ctx context.Context, fileKey string, ttl time.Duration, contentType string) (string, error) {
	m.presignUploadCalled++
	m.uploadKeys = append(m.uploadKeys, fileKey)
	m.uploadMimes = append(m.uploadMimes, contentType)
	if m.presignUploadErr != nil {
		return "", m.presignUploadErr
	}
	return "https://s3.example.com/" + fileKey + "?upload", nil
}

type mockCache struct {
	itemData map[int64][]byte
	listData map[bool][]byte

	getErr error

	getVideoCalled    bool
	setVideoCalled    bool
	getListCalled     bool
	setListCalled     bool
	invalidateCalled  bool
	invalidatedID     int64
	invalidationCount int
}

var _ port.Cache = (*mockCache)(nil)

func (c *mockCache) GetVideo(ctx context.Context, id int64) ([]byte, error) {
	c.getVideoCalled = true
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.itemData[id], nil
}
func (c *mockCache) SetVideo(ctx context.Context, id int64, data []byte) {
	c.setVideoCalled = true
	if c.itemData == nil {
		c.itemData = make(map[int64][]byte)
	}
	c.itemData[id] = data
}
func (c *mockCache) GetList(ctx context.Context, featured bool) ([]byte, error) {
	c.getListCalled = true
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.listData[featured], nil
}
func (c *mockCache) SetList(ctx context.Context, featured bool, data []byte) {
	c.setListCalled = true
	if c.listData == nil {
		c.listData = make(map[bool][]byte)
	}
	c.listData[featured] = data
}
func (c *mockCache) InvalidateVideo(ctx context.Context, id int64) error {
	c.invalidateCalled = true
	c.invalidatedID = id
	c.invalidationCount++
	delete(c.itemData, id)
	c.listData = nil
	return nil
}
