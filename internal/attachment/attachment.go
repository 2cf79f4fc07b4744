package attachment

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"marketplace-backend/pkg/logger"
)

// ImageRef pairs a remote object key with its public fetch URL.
// The entity row owns the association and ordering; the object store owns
// the bytes. The two are kept consistent by the Manager's ordered calls,
// not by a transaction.
type ImageRef struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// File is one decoded multipart upload
type File struct {
	Name string
	Data []byte
}

// Store is the remote object store surface the manager needs
type Store interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Destroy(ctx context.Context, key string) error
}

// Validator rejects blobs that are not decodable images
type Validator interface {
	ValidateImage(data []byte) error
}

var (
	ErrNoFiles       = errors.New("no files provided")
	ErrImageNotFound = errors.New("image not found")
	ErrInvalidIndex  = errors.New("invalid image index")
)

// Manager keeps an entity's image list consistent with the remote store.
//
// Two destroy policies coexist and must not be unified:
//   - best-effort: replacement and purge paths log a failed destroy and
//     keep going, so the primary operation always completes;
//   - must-succeed: explicit removal destroys the remote object before the
//     local splice and fails the whole operation if the destroy fails.
type Manager struct {
	store     Store
	validator Validator
}

func NewManager(store Store, validator Validator) *Manager {
	return &Manager{
		store:     store,
		validator: validator,
	}
}

// AttachMany uploads files sequentially in input order and returns their
// refs in the same order. The first failed upload aborts the whole
// operation; objects already uploaded are not rolled back, which can leave
// orphans in the store.
func (m *Manager) AttachMany(ctx context.Context, prefix string, files []File) ([]ImageRef, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	refs := make([]ImageRef, 0, len(files))
	for i, f := range files {
		ref, err := m.upload(ctx, prefix, f)
		if err != nil {
			return nil, fmt.Errorf("upload file %d (%s): %w", i, f.Name, err)
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

// AttachOne uploads a single file for a designated single-image slot.
// The previous object, if any, is destroyed first; a failed destroy is
// logged and does not block the new upload.
func (m *Manager) AttachOne(ctx context.Context, prefix string, file File, previous *ImageRef) (ImageRef, error) {
	if previous != nil && previous.PublicID != "" {
		if err := m.store.Destroy(ctx, previous.PublicID); err != nil {
			logger.Warn("failed to destroy replaced image, continuing", map[string]interface{}{
				"public_id": previous.PublicID,
				"error":     err.Error(),
			})
		}
	}

	return m.upload(ctx, prefix, file)
}

// RemoveByID destroys the object whose PublicID matches and returns the
// spliced list. The destroy must succeed before the local removal.
func (m *Manager) RemoveByID(ctx context.Context, refs []ImageRef, publicID string) ([]ImageRef, error) {
	idx := -1
	for i, ref := range refs {
		if ref.PublicID == publicID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrImageNotFound
	}

	return m.removeAt(ctx, refs, idx)
}

// RemoveByIndex destroys the object at index and returns the spliced list.
// Same ordering contract as RemoveByID: remote destroy first, then splice.
func (m *Manager) RemoveByIndex(ctx context.Context, refs []ImageRef, index int) ([]ImageRef, error) {
	if index < 0 || index >= len(refs) {
		return nil, ErrInvalidIndex
	}

	return m.removeAt(ctx, refs, index)
}

// PurgeAll destroys every object sequentially. A failed destroy is logged
// and does not stop the remaining destroys; entity deletion always proceeds.
func (m *Manager) PurgeAll(ctx context.Context, refs []ImageRef) {
	for _, ref := range refs {
		if err := m.store.Destroy(ctx, ref.PublicID); err != nil {
			logger.Warn("failed to destroy image during purge, continuing", map[string]interface{}{
				"public_id": ref.PublicID,
				"error":     err.Error(),
			})
		}
	}
}

func (m *Manager) removeAt(ctx context.Context, refs []ImageRef, idx int) ([]ImageRef, error) {
	if err := m.store.Destroy(ctx, refs[idx].PublicID); err != nil {
		return nil, fmt.Errorf("destroy image %s: %w", refs[idx].PublicID, err)
	}

	out := make([]ImageRef, 0, len(refs)-1)
	out = append(out, refs[:idx]...)
	out = append(out, refs[idx+1:]...)
	return out, nil
}

func (m *Manager) upload(ctx context.Context, prefix string, f File) (ImageRef, error) {
	if err := m.validator.ValidateImage(f.Data); err != nil {
		return ImageRef{}, err
	}

	ext := strings.ToLower(filepath.Ext(f.Name))
	if ext == "" {
		ext = ".jpg"
	}
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	url, err := m.store.Upload(ctx, key, f.Data, contentType)
	if err != nil {
		return ImageRef{}, err
	}

	return ImageRef{PublicID: key, URL: url}, nil
}
