package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AryanGore/LabDrop/internal/domain"
	"github.com/AryanGore/LabDrop/internal/domain/models"
	"github.com/AryanGore/LabDrop/internal/domain/repositories"
)

// In-memory fakes implementing the repository contracts, shared by the
// service tests in this package.

func strPtr(s string) *string { return &s }

func samePointee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFolderRepo struct {
	mu      sync.Mutex
	folders map[string]*models.Folder

	// beforeCreate runs inside Create before the duplicate check, letting a
	// test inject a competing sibling to simulate a lost creation race.
	beforeCreate func(r *fakeFolderRepo, f *models.Folder)

	createCalls int
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: make(map[string]*models.Folder)}
}

// insert seeds a folder directly, bypassing conflict checks
func (r *fakeFolderRepo) insert(f *models.Folder) *models.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	cp := *f
	r.folders[f.ID] = &cp
	return f
}

func (r *fakeFolderRepo) get(id string) *models.Folder {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.folders[id]; ok {
		cp := *f
		return &cp
	}
	return nil
}

func (r *fakeFolderRepo) Create(ctx context.Context, folder *models.Folder) error {
	if hook := r.beforeCreate; hook != nil {
		r.beforeCreate = nil
		hook(r, folder)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++

	for _, f := range r.folders {
		if f.OwnerID == folder.OwnerID && !f.IsDeleted() &&
			samePointee(f.ParentID, folder.ParentID) && f.Name == folder.Name {
			return domain.NewConflict("folder", f.ID, f.Name)
		}
	}

	if folder.ID == "" {
		folder.ID = uuid.NewString()
	}
	now := time.Now()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	cp := *folder
	r.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) FindChild(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.folders {
		if f.OwnerID == ownerID && !f.IsDeleted() &&
			samePointee(f.ParentID, parentID) && f.Name == name {
			cp := *f
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("folder %q: %w", name, domain.ErrNotFound)
}

func (r *fakeFolderRepo) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Folder
	for _, f := range r.folders {
		if f.OwnerID == ownerID && !f.IsDeleted() && samePointee(f.ParentID, parentID) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) FindDescendants(ctx context.Context, ownerID, pathPrefix string) ([]models.Folder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Folder
	for _, f := range r.folders {
		if f.OwnerID == ownerID && strings.HasPrefix(f.Path, pathPrefix) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFolderRepo) UpdateName(ctx context.Context, id, ownerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	f.Name = name
	f.UpdatedAt = time.Now()
	return nil
}

func (r *fakeFolderRepo) RewritePathPrefix(ctx context.Context, id, ownerID, oldPrefix, newPrefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[id]
	if !ok || f.OwnerID != ownerID {
		return nil
	}
	// Rewrite against the stored value, leaving non-matching rows alone
	if rewritten, ok := RewritePrefix(f.Path, oldPrefix, newPrefix); ok {
		f.Path = rewritten
		f.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeFolderRepo) MarkDeleted(ctx context.Context, ownerID string, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, id := range ids {
		f, ok := r.folders[id]
		if !ok || f.OwnerID != ownerID {
			continue
		}
		if f.DeletedAt == nil {
			at := now
			f.DeletedAt = &at
		}
	}
	return nil
}

func (r *fakeFolderRepo) AppendFileID(ctx context.Context, folderID, ownerID, fileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[folderID]
	if !ok || f.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	for _, existing := range f.FileIDs {
		if existing == fileID {
			return nil
		}
	}
	f.FileIDs = append(f.FileIDs, fileID)
	return nil
}

func (r *fakeFolderRepo) RemoveFileID(ctx context.Context, folderID, ownerID, fileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.folders[folderID]
	if !ok || f.OwnerID != ownerID {
		return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	kept := f.FileIDs[:0]
	for _, existing := range f.FileIDs {
		if existing != fileID {
			kept = append(kept, existing)
		}
	}
	f.FileIDs = kept
	return nil
}

type fakeFileRepo struct {
	mu    sync.Mutex
	files map[string]*models.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*models.File)}
}

func (r *fakeFileRepo) insert(f *models.File) *models.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Status == "" {
		f.Status = models.FileStatusActive
	}
	cp := *f
	r.files[f.ID] = &cp
	return f
}

func (r *fakeFileRepo) get(id string) *models.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.files[id]; ok {
		cp := *f
		return &cp
	}
	return nil
}

func (r *fakeFileRepo) Create(ctx context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	if file.Status == "" {
		file.Status = models.FileStatusActive
	}
	now := time.Now()
	file.CreatedAt = now
	file.UpdatedAt = now
	cp := *file
	r.files[file.ID] = &cp
	return nil
}

func (r *fakeFileRepo) GetByID(ctx context.Context, id, ownerID string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok || f.OwnerID != ownerID {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) FindActive(ctx context.Context, ownerID string, folderID *string, name string) (*models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.IsActive() &&
			samePointee(f.FolderID, folderID) && f.Name == name {
			cp := *f
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("file %q: %w", name, domain.ErrNotFound)
}

func (r *fakeFileRepo) ListActive(ctx context.Context, ownerID string, folderID *string) ([]models.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.File
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.IsActive() && samePointee(f.FolderID, folderID) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) UpdateName(ctx context.Context, id, ownerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok || f.OwnerID != ownerID {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	f.Name = name
	f.UpdatedAt = time.Now()
	return nil
}

func (r *fakeFileRepo) MarkDeleted(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.files[id]
	if !ok || f.OwnerID != ownerID {
		return nil
	}
	f.Status = models.FileStatusDeleted
	f.UpdatedAt = time.Now()
	return nil
}

func (r *fakeFileRepo) MarkDeletedByFolders(ctx context.Context, ownerID string, folderIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make(map[string]bool, len(folderIDs))
	for _, id := range folderIDs {
		members[id] = true
	}
	for _, f := range r.files {
		if f.OwnerID == ownerID && f.FolderID != nil && members[*f.FolderID] {
			f.Status = models.FileStatusDeleted
		}
	}
	return nil
}

type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (b *fakeBlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	if b.putErr != nil {
		return b.putErr
	}
	var buf bytes.Buffer
	if body != nil {
		if _, err := io.Copy(&buf, body); err != nil {
			return err
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = buf.Bytes()
	return nil
}

func (b *fakeBlobStore) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.objects[key]; !ok {
		return "", fmt.Errorf("object %s: %w", key, domain.ErrNotFound)
	}
	return "https://blobs.test/" + key, nil
}

func (b *fakeBlobStore) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
