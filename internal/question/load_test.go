package question

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dump: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeDump(t, `{
		"2": {"q": "Второй вопрос?", "a": "Два"},
		"1": {"q": "Первый вопрос?", "a": "Один"},
		"3": {"q": "", "a": "пропуск"},
		"4": {"q": "Без ответа?", "a": ""}
	}`)

	records, err := LoadFile(path, 0)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	// Records follow sorted ids, so repeated loads are deterministic.
	if records[0].Question != "Первый вопрос?" || records[1].Question != "Второй вопрос?" {
		t.Errorf("order = [%q, %q]", records[0].Question, records[1].Question)
	}
}

func TestLoadFileLimit(t *testing.T) {
	path := writeDump(t, `{
		"1": {"q": "Первый?", "a": "Один"},
		"2": {"q": "Второй?", "a": "Два"},
		"3": {"q": "Третий?", "a": "Три"}
	}`)

	records, err := LoadFile(path, 2)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len = %d, want 2", len(records))
	}
}

func TestLoadFileBadInput(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"), 0); err == nil {
		t.Error("missing file accepted")
	}

	path := writeDump(t, `not json`)
	if _, err := LoadFile(path, 0); err == nil {
		t.Error("malformed file accepted")
	}
}
