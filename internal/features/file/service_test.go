package file

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"casa360/internal/config"
	"casa360/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeFileRepo struct {
	files map[string]*StoredFile
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[string]*StoredFile{}}
}

func (f *fakeFileRepo) Create(_ context.Context, file *StoredFile) error {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	f.files[file.ID.Hex()] = file
	return nil
}

func (f *fakeFileRepo) Get(_ context.Context, id string) (*StoredFile, error) {
	file, ok := f.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *file
	return &cp, nil
}

func (f *fakeFileRepo) FindByFamily(_ context.Context, familyID string) ([]StoredFile, error) {
	var out []StoredFile
	for _, file := range f.files {
		if file.FamilyID.Hex() == familyID {
			out = append(out, *file)
		}
	}
	return out, nil
}

func (f *fakeFileRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.files[id]; !ok {
		return ErrNotFound
	}
	delete(f.files, id)
	return nil
}

func newTestFileService(repo FileRepository) FileService {
	utils.SetSecret("test-secret")
	return NewFileService(repo, zap.NewNop(), &config.Config{SignedURLLifetime: 15 * time.Minute})
}

func TestSignedURLVerifies(t *testing.T) {
	svc := newTestFileService(newFakeFileRepo())

	f := &StoredFile{ID: primitive.NewObjectID()}
	url := svc.SignedURL(f)

	if !strings.HasPrefix(url, "/api/files/download/"+f.ID.Hex()+"?") {
		t.Fatalf("url = %q", url)
	}

	var expires, sig string
	query := url[strings.Index(url, "?")+1:]
	for _, kv := range strings.Split(query, "&") {
		parts := strings.SplitN(kv, "=", 2)
		switch parts[0] {
		case "expires":
			expires = parts[1]
		case "sig":
			sig = parts[1]
		}
	}

	if err := utils.VerifySignedResource(f.ID.Hex(), expires, sig); err != nil {
		t.Errorf("fresh link should verify: %v", err)
	}
	if err := utils.VerifySignedResource(f.ID.Hex(), expires, sig+"00"); err == nil {
		t.Error("tampered signature should fail")
	}
	if err := utils.VerifySignedResource("other-id", expires, sig); err == nil {
		t.Error("signature must be bound to the file id")
	}
}

func TestDeleteAuthorization(t *testing.T) {
	repo := newFakeFileRepo()
	svc := newTestFileService(repo)

	family := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	stored := &StoredFile{
		FamilyID:   family,
		UploadedBy: owner,
		Path:       "/nonexistent/on/disk",
	}
	if err := repo.Create(context.Background(), stored); err != nil {
		t.Fatalf("create: %v", err)
	}
	id := stored.ID.Hex()

	err := svc.Delete(context.Background(), family.Hex(), id, other.Hex(), false)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger delete err = %v, want ErrForbidden", err)
	}

	// Admins may remove anyone's upload. A missing disk file is tolerated.
	if err := svc.Delete(context.Background(), family.Hex(), id, other.Hex(), true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := repo.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
		t.Error("metadata should be gone after delete")
	}
}

func TestDeleteScopedToFamily(t *testing.T) {
	repo := newFakeFileRepo()
	svc := newTestFileService(repo)

	owner := primitive.NewObjectID()
	stored := &StoredFile{
		FamilyID:   primitive.NewObjectID(),
		UploadedBy: owner,
		Path:       "/nonexistent/on/disk",
	}
	repo.Create(context.Background(), stored)

	otherFamily := primitive.NewObjectID().Hex()
	err := svc.Delete(context.Background(), otherFamily, stored.ID.Hex(), owner.Hex(), true)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-family delete err = %v, want ErrNotFound", err)
	}
}

func TestValidateUpload(t *testing.T) {
	svc := newTestFileService(newFakeFileRepo())

	if err := svc.ValidateUpload(1 << 20); err != nil {
		t.Errorf("small upload rejected: %v", err)
	}
	if err := svc.ValidateUpload(maxUploadSize + 1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("oversized upload err = %v, want ErrTooLarge", err)
	}
}
