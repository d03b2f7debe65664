package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONFileStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testPath := filepath.Join(tmpDir, "scores.json")

	// NewJSONFileStorage resolves a path under the user's home directory;
	// build the struct directly so the test stays on the temp dir.
	storage := &JSONFileStorage{path: testPath}

	// 1. Test Load on non-existent file (should return empty)
	entries, err := storage.LoadAll()
	if err != nil {
		t.Errorf("LoadAll on non-existent file returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}

	// 2. Test Save
	testEntries := []ScoreHistoryEntry{
		{Score: 100, Lines: 1, Level: 0, Timestamp: "2023-01-01T00:00:00Z"},
		{Score: 2200, Lines: 15, Level: 2, Timestamp: "2023-01-02T00:00:00Z"},
	}

	err = storage.SaveAll(testEntries)
	if err != nil {
		t.Fatalf("SaveAll returned error: %v", err)
	}

	// Verify file existence
	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("File was not created at %s", testPath)
	}

	// 3. Test Load again (should return saved entries)
	loadedEntries, err := storage.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}

	if len(loadedEntries) != len(testEntries) {
		t.Errorf("Expected %d entries, got %d", len(testEntries), len(loadedEntries))
	}

	// Check content
	if loadedEntries[0].Score != 100 || loadedEntries[1].Lines != 15 {
		t.Errorf("Loaded content mismatch. Got: %+v", loadedEntries)
	}
}

func TestJSONFileStorage_CorruptFile(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "corrupt.json")

	// Write garbage to file
	err := os.WriteFile(testPath, []byte("{ not valid json }"), 0644)
	if err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	storage := &JSONFileStorage{path: testPath}

	_, err = storage.LoadAll()
	if err == nil {
		t.Error("Expected error when loading corrupt file, got nil")
	}
}

func TestJSONFileStorage_EmptyFile(t *testing.T) {
	// Empty file is valid (EOF handled)
	testPath := filepath.Join(t.TempDir(), "empty.json")

	err := os.WriteFile(testPath, []byte(""), 0644)
	if err != nil {
		t.Fatalf("Failed to write empty file: %v", err)
	}

	storage := &JSONFileStorage{path: testPath}

	entries, err := storage.LoadAll()
	if err != nil {
		t.Errorf("LoadAll on empty file returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries from empty file, got %d", len(entries))
	}
}
