package scripture

import (
	"reflect"
	"testing"
)

func TestSortVersionsChineseFirst(t *testing.T) {
	versions := []string{"niv2011.sqlite3", "和修本.sqlite3", "asv.sqlite3", "当代译本.sqlite3", "和合本.sqlite3"}
	SortVersions(versions)
	want := []string{"和修本.sqlite3", "和合本.sqlite3", "当代译本.sqlite3", "asv.sqlite3", "niv2011.sqlite3"}
	if !reflect.DeepEqual(versions, want) {
		t.Fatalf("order = %v, want %v", versions, want)
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"和合本.sqlite3": "和合本",
		"kjv.db":        "kjv",
		"plain":         "plain",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsVersionFile(t *testing.T) {
	if !IsVersionFile("kjv.sqlite3") || !IsVersionFile("kjv.db") {
		t.Fatalf("expected version files")
	}
	if IsVersionFile("notes.txt") || IsVersionFile(".db") {
		t.Fatalf("unexpected version file")
	}
}
