package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/planora-ai/planora/models"
)

// setupTestStore creates an initialized store on a temp data file.
func setupTestStore(t *testing.T) (*FileProjectStore, string) {
	t.Helper()
	tmpDir := t.TempDir()
	dataFile := filepath.Join(tmpDir, "projects.json")

	s := NewFileProjectStore()
	err := s.Initialize(map[string]string{
		"dataFile":       dataFile,
		"dataFileFormat": "json",
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, dataFile
}

func testProject(name string) models.SavedPlan {
	p := models.NewEmptyPlan()
	p.Analysis.Content = "procesos manuales de " + name
	return models.SavedPlan{
		Name:                name,
		BusinessDescription: "Panadería que gestiona pedidos por WhatsApp",
		Plan:                p,
	}
}

func TestCreateProjectMintsIDAndTimestamp(t *testing.T) {
	s, _ := setupTestStore(t)

	created, err := s.CreateProject(testProject("Panadería"))
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if created.ID == "" {
		t.Error("created project should have an ID")
	}
	if created.Timestamp <= 0 {
		t.Error("created project should have a timestamp")
	}

	got, err := s.GetProject(created.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.Name != "Panadería" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Plan.Analysis.Content != "procesos manuales de Panadería" {
		t.Errorf("plan content lost: %q", got.Plan.Analysis.Content)
	}
}

func TestCreateProjectPrepends(t *testing.T) {
	s, _ := setupTestStore(t)

	first, err := s.CreateProject(testProject("primera"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := s.CreateProject(testProject("segunda"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	if projects[0].ID != second.ID || projects[1].ID != first.ID {
		t.Errorf("newest project should come first: %s, %s", projects[0].Name, projects[1].Name)
	}
}

func TestCreateProjectIDCollision(t *testing.T) {
	s, _ := setupTestStore(t)

	p := testProject("con id")
	p.ID = "fixed-id"
	if _, err := s.CreateProject(p); err != nil {
		t.Fatalf("create with explicit ID: %v", err)
	}
	if _, err := s.CreateProject(p); err == nil {
		t.Error("creating a duplicate ID should fail")
	}
}

func TestUpdateProjectKeepsPosition(t *testing.T) {
	s, _ := setupTestStore(t)

	older, _ := s.CreateProject(testProject("vieja"))
	newer, _ := s.CreateProject(testProject("nueva"))

	updated := older
	updated.Plan.ROI.Content = "ROI revisado"
	result, err := s.UpdateProject(updated)
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if result.Timestamp < older.Timestamp {
		t.Error("update should refresh the timestamp")
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	// Updates happen in place: the updated project must not jump to the front.
	if projects[0].ID != newer.ID {
		t.Errorf("position 0 = %s, want %s", projects[0].Name, newer.Name)
	}
	if projects[1].ID != older.ID {
		t.Errorf("position 1 = %s, want %s", projects[1].Name, older.Name)
	}
	if projects[1].Plan.ROI.Content != "ROI revisado" {
		t.Errorf("updated content lost: %q", projects[1].Plan.ROI.Content)
	}
}

func TestUpdateProjectKeepsNameWhenEmpty(t *testing.T) {
	s, _ := setupTestStore(t)

	created, _ := s.CreateProject(testProject("nombre original"))

	updated := created
	updated.Name = ""
	result, err := s.UpdateProject(updated)
	if err != nil {
		t.Fatalf("UpdateProject failed: %v", err)
	}
	if result.Name != "nombre original" {
		t.Errorf("name = %q, want original kept", result.Name)
	}
}

func TestUpdateProjectNotFound(t *testing.T) {
	s, _ := setupTestStore(t)

	missing := testProject("fantasma")
	missing.ID = "does-not-exist"
	if _, err := s.UpdateProject(missing); err == nil {
		t.Error("updating a missing project should fail")
	}
}

func TestDeleteProject(t *testing.T) {
	s, _ := setupTestStore(t)

	first, _ := s.CreateProject(testProject("uno"))
	second, _ := s.CreateProject(testProject("dos"))

	if err := s.DeleteProject(first.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != second.ID {
		t.Errorf("expected only %q to remain, got %d projects", second.Name, len(projects))
	}

	if err := s.DeleteProject(first.ID); err == nil {
		t.Error("deleting a missing project should fail")
	}
}

func TestCreateProjectNormalizesPlanAndSources(t *testing.T) {
	s, _ := setupTestStore(t)

	p := testProject("normalizada")
	p.Plan.Analysis.Title = "tampered"
	p.Sources = []models.GroundingSource{
		{URI: "https://example.com", Title: "ok"},
		{URI: "", Title: "dropped"},
	}

	created, err := s.CreateProject(p)
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if created.Plan.Analysis.Title != models.SectionTitles[models.SectionAnalysis] {
		t.Errorf("title not normalized: %q", created.Plan.Analysis.Title)
	}
	if len(created.Sources) != 1 {
		t.Errorf("sourceless entries should be filtered, got %d", len(created.Sources))
	}
}

// blockNextSave squats a directory on the temp-file path so the next atomic
// write fails. The failed save's cleanup removes the blocker again.
func blockNextSave(t *testing.T, dataFile string) {
	t.Helper()
	if err := os.Mkdir(dataFile+".tmp", 0o755); err != nil {
		t.Fatalf("failed to block save path: %v", err)
	}
}

func TestCreateFailureLeavesStoreUntouched(t *testing.T) {
	s, dataFile := setupTestStore(t)

	before, err := s.CreateProject(testProject("estable"))
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	blockNextSave(t, dataFile)
	if _, err := s.CreateProject(testProject("fallida")); err == nil {
		t.Fatal("create should fail when the data file cannot be written")
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != before.ID {
		t.Errorf("failed create must not change the stored list, got %d projects", len(projects))
	}
}

func TestUpdateFailureRestoresExistingEntry(t *testing.T) {
	s, dataFile := setupTestStore(t)

	created, err := s.CreateProject(testProject("intacta"))
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	blockNextSave(t, dataFile)
	attempted := created
	attempted.Plan.ROI.Content = "nunca debe persistir"
	if _, err := s.UpdateProject(attempted); err == nil {
		t.Fatal("update should fail when the data file cannot be written")
	}

	got, err := s.GetProject(created.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.Plan.ROI.Content != created.Plan.ROI.Content {
		t.Errorf("failed update leaked content: %q", got.Plan.ROI.Content)
	}
	if got.Timestamp != created.Timestamp {
		t.Errorf("failed update changed the timestamp: %d != %d", got.Timestamp, created.Timestamp)
	}
}

func TestDeleteFailureKeepsEntry(t *testing.T) {
	s, dataFile := setupTestStore(t)

	first, err := s.CreateProject(testProject("uno"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if _, err := s.CreateProject(testProject("dos")); err != nil {
		t.Fatalf("create second: %v", err)
	}

	blockNextSave(t, dataFile)
	if err := s.DeleteProject(first.ID); err == nil {
		t.Fatal("delete should fail when the data file cannot be written")
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("failed delete must keep both entries, got %d", len(projects))
	}
	if _, err := s.GetProject(first.ID); err != nil {
		t.Errorf("failed delete should leave the project retrievable: %v", err)
	}
}

func TestLoadDegradesToEmptyOnCorruptFile(t *testing.T) {
	s, dataFile := setupTestStore(t)

	if _, err := s.CreateProject(testProject("antes")); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	// Corrupt the data file directly. The checksum sidecar no longer matches,
	// so the store degrades to an empty list instead of erroring.
	if err := os.WriteFile(dataFile, []byte("{ not valid json"), 0o644); err != nil {
		t.Fatalf("corrupt write failed: %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects after corruption should not fail: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("corrupt store should read as empty, got %d projects", len(projects))
	}

	// The store remains usable for new saves.
	if _, err := s.CreateProject(testProject("después")); err != nil {
		t.Fatalf("CreateProject after corruption failed: %v", err)
	}
}

func TestLoadDegradesToEmptyOnInvalidPayload(t *testing.T) {
	s, dataFile := setupTestStore(t)

	// Valid checksum over an invalid payload: the unmarshal failure itself
	// must degrade to empty too.
	payload := []byte(`"just a string"`)
	if err := os.WriteFile(dataFile, payload, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.WriteFile(dataFile+checksumSuffix, []byte(calculateChecksum(payload)), 0o644); err != nil {
		t.Fatalf("checksum write failed: %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("invalid payload should read as empty, got %d projects", len(projects))
	}
}

func TestInitializeRejectsUnknownFormat(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewFileProjectStore()
	err := s.Initialize(map[string]string{
		"dataFile":       filepath.Join(tmpDir, "projects.xml"),
		"dataFileFormat": "xml",
	})
	if err == nil {
		t.Error("unsupported format should be rejected")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewFileProjectStore()
	err := s.Initialize(map[string]string{
		"dataFile":       filepath.Join(tmpDir, "projects.yaml"),
		"dataFileFormat": "yaml",
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() { _ = s.Close() }()

	created, err := s.CreateProject(testProject("yaml"))
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	got, err := s.GetProject(created.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if got.Plan.Analysis.Content != created.Plan.Analysis.Content {
		t.Errorf("yaml round trip lost content: %q", got.Plan.Analysis.Content)
	}
}

func TestBackupAndRestore(t *testing.T) {
	s, _ := setupTestStore(t)

	created, err := s.CreateProject(testProject("respaldada"))
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := s.Backup(backupPath); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if err := s.DeleteAllProjects(); err != nil {
		t.Fatalf("DeleteAllProjects failed: %v", err)
	}
	if projects, _ := s.ListProjects(); len(projects) != 0 {
		t.Fatal("store should be empty after wipe")
	}

	if err := s.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != created.ID {
		t.Errorf("restore should bring back the project, got %d", len(projects))
	}
}
