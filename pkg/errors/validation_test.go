package errors

import "testing"

func TestValidateDocumentName(t *testing.T) {
	valid := []string{"roadmap", "q3-planning", "Project Atlas", "notes.v2", "プロジェクト"}
	for _, name := range valid {
		if err := ValidateDocumentName(name); err != nil {
			t.Errorf("ValidateDocumentName(%q) = %v, want nil", name, err)
		}
	}

	invalid := map[string]string{
		"empty":           "",
		"too long":        string(make([]byte, 300)),
		"dot dot":         "foo/../bar",
		"double slash":    "foo//bar",
		"null byte":       "foo\x00bar",
		"backslash":       `foo\bar`,
		"control char":    "foo\x01bar",
		"newline":         "foo\nbar",
		"carriage return": "foo\rbar",
	}
	for label, name := range invalid {
		err := ValidateDocumentName(name)
		if err == nil {
			t.Errorf("%s: ValidateDocumentName(%q) = nil, want error", label, name)
			continue
		}
		if GetCode(err) != ErrCodeInvalidDocument {
			t.Errorf("%s: code = %v, want %v", label, GetCode(err), ErrCodeInvalidDocument)
		}
	}
}

func TestValidateDocumentID(t *testing.T) {
	if err := ValidateDocumentID("2c1f8a10-9a6e-4b6e-9f1d-7a3c2b1e0d4f"); err != nil {
		t.Fatalf("uuid id rejected: %v", err)
	}

	invalid := map[string]string{
		"empty":     "",
		"too long":  string(make([]byte, 200)),
		"slash":     "a/b",
		"backslash": `a\b`,
		"dot dot":   "a..b",
		"control":   "a\x01b",
	}
	for label, id := range invalid {
		if ValidateDocumentID(id) == nil {
			t.Errorf("%s: ValidateDocumentID(%q) = nil, want error", label, id)
		}
	}
}

func TestValidateNodeID(t *testing.T) {
	// Unlike document IDs, node IDs never touch the filesystem, so interior
	// dots are fine.
	valid := []string{"node-1", "2c1f8a10-9a6e-4b6e-9f1d-7a3c2b1e0d4f", "root__gap_0", "a..b"}
	for _, id := range valid {
		if err := ValidateNodeID(id); err != nil {
			t.Errorf("ValidateNodeID(%q) = %v, want nil", id, err)
		}
	}

	invalid := map[string]string{
		"empty":        "",
		"too long":     string(make([]byte, 300)),
		"slash":        "a/b",
		"backslash":    `a\b`,
		"null byte":    "a\x00b",
		"control char": "a\x01b",
	}
	for label, id := range invalid {
		err := ValidateNodeID(id)
		if err == nil {
			t.Errorf("%s: ValidateNodeID(%q) = nil, want error", label, id)
			continue
		}
		if GetCode(err) != ErrCodeInvalidNode {
			t.Errorf("%s: code = %v, want %v", label, GetCode(err), ErrCodeInvalidNode)
		}
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{"maps/roadmap.json", "/tmp/roadmap.json", "./roadmap.json"}
	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) = %v, want nil", p, err)
		}
	}

	invalid := map[string]string{
		"empty":        "",
		"too long":     string(make([]byte, 600)),
		"null byte":    "foo\x00bar",
		"control char": "foo\x01bar",
	}
	for label, p := range invalid {
		err := ValidatePath(p)
		if err == nil {
			t.Errorf("%s: ValidatePath(%q) = nil, want error", label, p)
			continue
		}
		if GetCode(err) != ErrCodeInvalidInput {
			t.Errorf("%s: code = %v, want %v", label, GetCode(err), ErrCodeInvalidInput)
		}
	}
}
