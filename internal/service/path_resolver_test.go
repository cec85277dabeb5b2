package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/AryanGore/LabDrop/internal/config"
	"github.com/AryanGore/LabDrop/internal/domain"
	"github.com/AryanGore/LabDrop/internal/domain/models"
)

const testOwner = "owner-1"

func TestPathResolver_CreatesMissingChain(t *testing.T) {
	repo := newFakeFolderRepo()
	resolver := NewPathResolver(repo, testLogger())

	id, err := resolver.Resolve(context.Background(), testOwner, nil, "folderA/subfolderB")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if id == nil {
		t.Fatal("Resolve returned nil folder id")
	}

	leaf := repo.get(*id)
	if leaf == nil {
		t.Fatal("resolved folder not found in repository")
	}
	if leaf.Name != "subfolderB" {
		t.Errorf("leaf name = %q, want %q", leaf.Name, "subfolderB")
	}
	if leaf.Path != "/folderA/" {
		t.Errorf("leaf path = %q, want %q", leaf.Path, "/folderA/")
	}

	parent := repo.get(*leaf.ParentID)
	if parent == nil || parent.Name != "folderA" {
		t.Fatalf("intermediate folder missing or misnamed: %+v", parent)
	}
	if parent.Path != "/" {
		t.Errorf("intermediate path = %q, want %q", parent.Path, "/")
	}
	if parent.ParentID != nil {
		t.Errorf("intermediate parent = %v, want root", *parent.ParentID)
	}
}

func TestPathResolver_ReusesExistingChain(t *testing.T) {
	repo := newFakeFolderRepo()
	resolver := NewPathResolver(repo, testLogger())
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, testOwner, nil, "Docs/Reports")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	creates := repo.createCalls
	second, err := resolver.Resolve(ctx, testOwner, nil, "Docs/Reports")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if *first != *second {
		t.Errorf("second resolution returned %s, want %s", *second, *first)
	}
	if repo.createCalls != creates {
		t.Errorf("second resolution created %d folders, want 0", repo.createCalls-creates)
	}
}

func TestPathResolver_StartsFromFolder(t *testing.T) {
	repo := newFakeFolderRepo()
	resolver := NewPathResolver(repo, testLogger())

	start := repo.insert(&models.Folder{OwnerID: testOwner, Name: "Projects", Path: "/"})

	id, err := resolver.Resolve(context.Background(), testOwner, &start.ID, "2024/Q1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	leaf := repo.get(*id)
	if leaf.Path != "/Projects/2024/" {
		t.Errorf("leaf path = %q, want %q", leaf.Path, "/Projects/2024/")
	}
}

func TestPathResolver_EmptyPathReturnsStart(t *testing.T) {
	repo := newFakeFolderRepo()
	resolver := NewPathResolver(repo, testLogger())
	ctx := context.Background()

	tests := []struct {
		name  string
		path  string
		start *string
	}{
		{"empty path at root", "", nil},
		{"dot segments only", "./.", nil},
		{"empty path at folder", "", strPtr("start-id")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.start != nil {
				repo.insert(&models.Folder{ID: *tt.start, OwnerID: testOwner, Name: "Start", Path: "/"})
			}
			got, err := resolver.Resolve(ctx, testOwner, tt.start, tt.path)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if !samePointee(got, tt.start) {
				t.Errorf("Resolve returned %v, want start folder unchanged", got)
			}
		})
	}
}

func TestPathResolver_DeletedStartFolder(t *testing.T) {
	repo := newFakeFolderRepo()
	resolver := NewPathResolver(repo, testLogger())

	start := repo.insert(&models.Folder{OwnerID: testOwner, Name: "Gone", Path: "/"})
	if err := repo.MarkDeleted(context.Background(), testOwner, []string{start.ID}); err != nil {
		t.Fatalf("MarkDeleted: %v", err)
	}

	_, err := resolver.Resolve(context.Background(), testOwner, &start.ID, "sub")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Resolve on deleted start = %v, want ErrNotFound", err)
	}
}

func TestPathResolver_SegmentTooLong(t *testing.T) {
	repo := newFakeFolderRepo()
	resolver := NewPathResolver(repo, testLogger())

	long := strings.Repeat("x", config.MaxFolderNameLength+1)
	_, err := resolver.Resolve(context.Background(), testOwner, nil, long)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Resolve with oversized segment = %v, want ErrValidation", err)
	}
}

// A lost creation race surfaces as a conflict from Create; the resolver
// must re-read and converge on the winner instead of failing the batch.
func TestPathResolver_LostCreationRace(t *testing.T) {
	repo := newFakeFolderRepo()
	resolver := NewPathResolver(repo, testLogger())

	var winner *models.Folder
	repo.beforeCreate = func(r *fakeFolderRepo, f *models.Folder) {
		winner = r.insert(&models.Folder{
			OwnerID:  f.OwnerID,
			ParentID: f.ParentID,
			Name:     f.Name,
			Path:     f.Path,
		})
	}

	id, err := resolver.Resolve(context.Background(), testOwner, nil, "Shared")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if *id != winner.ID {
		t.Errorf("Resolve converged on %s, want the race winner %s", *id, winner.ID)
	}
}
