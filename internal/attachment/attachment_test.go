package attachment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStore) Destroy(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// okValidator accepts everything; validation itself is covered by the
// storage package tests.
type okValidator struct{}

func (okValidator) ValidateImage([]byte) error { return nil }

type failValidator struct{}

func (failValidator) ValidateImage([]byte) error { return errors.New("not an image") }

func newManager(store *mockStore) *Manager {
	return NewManager(store, okValidator{})
}

func refList(ids ...string) []ImageRef {
	refs := make([]ImageRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, ImageRef{PublicID: id, URL: "http://store/" + id})
	}
	return refs
}

func TestAttachMany_PreservesInputOrder(t *testing.T) {
	store := new(mockStore)
	store.On("Upload", mock.Anything, mock.Anything, []byte("first"), "image/jpeg").
		Return("http://store/a.jpg", nil).Once()
	store.On("Upload", mock.Anything, mock.Anything, []byte("second"), "image/png").
		Return("http://store/b.png", nil).Once()

	refs, err := newManager(store).AttachMany(context.Background(), "products/p1", []File{
		{Name: "a.jpg", Data: []byte("first")},
		{Name: "b.png", Data: []byte("second")},
	})

	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "http://store/a.jpg", refs[0].URL)
	assert.Equal(t, "http://store/b.png", refs[1].URL)
	assert.True(t, strings.HasPrefix(refs[0].PublicID, "products/p1/"))
	assert.True(t, strings.HasSuffix(refs[0].PublicID, ".jpg"))
	assert.True(t, strings.HasSuffix(refs[1].PublicID, ".png"))
	store.AssertExpectations(t)
}

func TestAttachMany_EmptyInput(t *testing.T) {
	store := new(mockStore)

	_, err := newManager(store).AttachMany(context.Background(), "products/p1", nil)

	assert.ErrorIs(t, err, ErrNoFiles)
	store.AssertNotCalled(t, "Upload")
}

func TestAttachMany_AbortsOnFirstFailure(t *testing.T) {
	store := new(mockStore)
	store.On("Upload", mock.Anything, mock.Anything, []byte("ok"), mock.Anything).
		Return("http://store/ok.jpg", nil).Once()
	store.On("Upload", mock.Anything, mock.Anything, []byte("boom"), mock.Anything).
		Return("", errors.New("upstream down")).Once()

	refs, err := newManager(store).AttachMany(context.Background(), "products/p1", []File{
		{Name: "ok.jpg", Data: []byte("ok")},
		{Name: "boom.jpg", Data: []byte("boom")},
		{Name: "never.jpg", Data: []byte("never")},
	})

	require.Error(t, err)
	assert.Nil(t, refs)
	// The third file is never attempted; the first upload is not rolled back.
	store.AssertNumberOfCalls(t, "Upload", 2)
	store.AssertNotCalled(t, "Destroy")
}

func TestAttachMany_RejectsInvalidImage(t *testing.T) {
	store := new(mockStore)
	m := NewManager(store, failValidator{})

	_, err := m.AttachMany(context.Background(), "products/p1", []File{
		{Name: "a.jpg", Data: []byte("junk")},
	})

	assert.Error(t, err)
	store.AssertNotCalled(t, "Upload")
}

func TestAttachOne_DestroysPreviousBestEffort(t *testing.T) {
	store := new(mockStore)
	store.On("Destroy", mock.Anything, "users/u1/old.jpg").
		Return(errors.New("upstream down")).Once()
	store.On("Upload", mock.Anything, mock.Anything, []byte("new"), "image/jpeg").
		Return("http://store/new.jpg", nil).Once()

	prev := &ImageRef{PublicID: "users/u1/old.jpg", URL: "http://store/old.jpg"}
	ref, err := newManager(store).AttachOne(context.Background(), "users/u1", File{Name: "new.jpg", Data: []byte("new")}, prev)

	// Failed destroy of the old picture must not block the new upload
	require.NoError(t, err)
	assert.Equal(t, "http://store/new.jpg", ref.URL)
	store.AssertExpectations(t)
}

func TestAttachOne_NoPrevious(t *testing.T) {
	store := new(mockStore)
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("http://store/new.jpg", nil).Once()

	_, err := newManager(store).AttachOne(context.Background(), "users/u1", File{Name: "new.jpg", Data: []byte("new")}, nil)

	require.NoError(t, err)
	store.AssertNotCalled(t, "Destroy")
}

func TestRemoveByID_DestroyThenSplice(t *testing.T) {
	store := new(mockStore)
	store.On("Destroy", mock.Anything, "p/b.jpg").Return(nil).Once()

	refs := refList("p/a.jpg", "p/b.jpg", "p/c.jpg")
	out, err := newManager(store).RemoveByID(context.Background(), refs, "p/b.jpg")

	require.NoError(t, err)
	assert.Equal(t, refList("p/a.jpg", "p/c.jpg"), out)
	store.AssertExpectations(t)
}

func TestRemoveByID_NotFound(t *testing.T) {
	store := new(mockStore)

	refs := refList("p/a.jpg")
	out, err := newManager(store).RemoveByID(context.Background(), refs, "p/missing.jpg")

	assert.ErrorIs(t, err, ErrImageNotFound)
	assert.Nil(t, out)
	assert.Equal(t, refList("p/a.jpg"), refs)
	store.AssertNotCalled(t, "Destroy")
}

func TestRemoveByID_DestroyFailureIsFatal(t *testing.T) {
	store := new(mockStore)
	store.On("Destroy", mock.Anything, "p/a.jpg").Return(errors.New("upstream down")).Once()

	refs := refList("p/a.jpg", "p/b.jpg")
	out, err := newManager(store).RemoveByID(context.Background(), refs, "p/a.jpg")

	// Unlike replacement and purge, explicit removal must not proceed past
	// a failed remote destroy.
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, refList("p/a.jpg", "p/b.jpg"), refs)
}

func TestRemoveByIndex_Bounds(t *testing.T) {
	store := new(mockStore)
	m := newManager(store)
	refs := refList("p/a.jpg", "p/b.jpg")

	for _, index := range []int{-1, 2, 100} {
		out, err := m.RemoveByIndex(context.Background(), refs, index)
		assert.ErrorIs(t, err, ErrInvalidIndex, "index %d", index)
		assert.Nil(t, out)
	}
	assert.Equal(t, refList("p/a.jpg", "p/b.jpg"), refs)
	store.AssertNotCalled(t, "Destroy")
}

func TestRemoveByIndex_RemovesCorrectEntry(t *testing.T) {
	store := new(mockStore)
	store.On("Destroy", mock.Anything, "p/a.jpg").Return(nil).Once()

	refs := refList("p/a.jpg", "p/b.jpg")
	out, err := newManager(store).RemoveByIndex(context.Background(), refs, 0)

	require.NoError(t, err)
	assert.Equal(t, refList("p/b.jpg"), out)
	store.AssertExpectations(t)
}

func TestPurgeAll_ContinuesPastFailures(t *testing.T) {
	store := new(mockStore)
	store.On("Destroy", mock.Anything, "p/a.jpg").Return(errors.New("upstream down")).Once()
	store.On("Destroy", mock.Anything, "p/b.jpg").Return(nil).Once()
	store.On("Destroy", mock.Anything, "p/c.jpg").Return(errors.New("upstream down")).Once()

	newManager(store).PurgeAll(context.Background(), refList("p/a.jpg", "p/b.jpg", "p/c.jpg"))

	// Every object gets a destroy attempt regardless of earlier failures
	store.AssertNumberOfCalls(t, "Destroy", 3)
}

func TestUpload_DefaultsExtension(t *testing.T) {
	store := new(mockStore)
	var gotKey string
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		gotKey = key
		return true
	}), mock.Anything, mock.Anything).Return("http://store/x", nil).Once()

	_, err := newManager(store).AttachOne(context.Background(), "posts/p9", File{Name: "noext", Data: []byte("d")}, nil)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotKey, "posts/p9/"), fmt.Sprintf("key %q", gotKey))
	assert.True(t, strings.HasSuffix(gotKey, ".jpg"))
}
