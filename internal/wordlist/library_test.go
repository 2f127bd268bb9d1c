package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
	"gematria/internal/gematria"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeWorkbook(t *testing.T, path string, cells []string) {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(wb.GetActiveSheetIndex())
	for i, v := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := wb.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("SetCellValue %s failed: %v", cell, err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func wordTexts(words []gematria.Word) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Text)
	}
	return out
}

func newTestLibrary(t *testing.T) (*Library, string) {
	t.Helper()

	root := t.TempDir()
	dictDir := filepath.Join(root, "dictionaries")
	themesDir := filepath.Join(root, "themes")

	writeFile(t, filepath.Join(dictDir, "oxford_3000.txt"), "cat\ndog2\n  FISH  \n\n")
	writeFile(t, filepath.Join(dictDir, "basic.txt"), "sun\nmoon\n")
	writeFile(t, filepath.Join(dictDir, "notes.md"), "ignored")
	writeFile(t, filepath.Join(themesDir, "Space.txt"), "star\nmoon\n")
	writeWorkbook(t, filepath.Join(dictDir, "sheet.xlsx"), []string{"apple", "two words", "Pear"})
	writeWorkbook(t, filepath.Join(themesDir, "fruit.xlsx"), []string{"kiwi", "lime"})

	lib, err := New(dictDir, themesDir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return lib, dictDir
}

func TestLibrary_Names(t *testing.T) {
	lib, _ := newTestLibrary(t)

	names, err := lib.Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	want := []string{"basic", "oxford_3000", "sheet"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestLibrary_DictionaryTextAndXLSX(t *testing.T) {
	lib, _ := newTestLibrary(t)

	words, err := lib.Dictionary("oxford_3000")
	if err != nil {
		t.Fatalf("Dictionary: %v", err)
	}
	if got, want := wordTexts(words), []string{"CAT", "FISH"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("oxford_3000 = %v, want %v", got, want)
	}

	words, err = lib.Dictionary("sheet")
	if err != nil {
		t.Fatalf("Dictionary sheet: %v", err)
	}
	if got, want := wordTexts(words), []string{"APPLE", "PEAR"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sheet = %v, want %v", got, want)
	}
}

func TestLibrary_DictionaryIsCached(t *testing.T) {
	lib, dictDir := newTestLibrary(t)

	first, err := lib.Dictionary("basic")
	if err != nil {
		t.Fatalf("Dictionary: %v", err)
	}

	writeFile(t, filepath.Join(dictDir, "basic.txt"), "changed\n")

	second, err := lib.Dictionary("basic")
	if err != nil {
		t.Fatalf("Dictionary again: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached dictionary changed: %v vs %v", wordTexts(first), wordTexts(second))
	}
}

func TestLibrary_UnknownDictionary(t *testing.T) {
	lib, _ := newTestLibrary(t)

	for _, name := range []string{"missing", "", "..", "../themes/Space", `a\b`, "notes"} {
		if _, err := lib.Dictionary(name); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Dictionary(%q) err = %v, want ErrNotFound", name, err)
		}
		ok, err := lib.Exists(name)
		if err != nil || ok {
			t.Fatalf("Exists(%q) = %v, %v", name, ok, err)
		}
	}
}

func TestLibrary_Themes(t *testing.T) {
	lib, _ := newTestLibrary(t)

	if got, want := lib.ThemeNames(), []string{"fruit", "space"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ThemeNames = %v, want %v", got, want)
	}

	words, ok := lib.Theme(" SPACE ")
	if !ok {
		t.Fatal("theme space not found")
	}
	if got, want := wordTexts(words), []string{"STAR", "MOON"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("space = %v, want %v", got, want)
	}

	if _, ok := lib.Theme("ocean"); ok {
		t.Fatal("unexpected theme ocean")
	}
}

func TestLibrary_CatalogThemeFirst(t *testing.T) {
	lib, _ := newTestLibrary(t)

	c, err := lib.Catalog("basic", "space")
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if got, want := wordTexts(c.Words()), []string{"STAR", "MOON", "SUN", "MOON"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}

	c, err = lib.Catalog("basic", "unknown")
	if err != nil {
		t.Fatalf("Catalog unknown theme: %v", err)
	}
	if got, want := wordTexts(c.Words()), []string{"SUN", "MOON"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("catalog = %v, want %v", got, want)
	}

	if _, err := lib.Catalog("missing", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Catalog missing err = %v", err)
	}
}

func TestNew_MissingThemesDir(t *testing.T) {
	lib, err := New(t.TempDir(), filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n := len(lib.ThemeNames()); n != 0 {
		t.Fatalf("themes = %d, want 0", n)
	}
}

func TestLibrary_NamesMissingDir(t *testing.T) {
	lib, err := New(filepath.Join(t.TempDir(), "nope"), "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := lib.Names(); err == nil {
		t.Fatal("expected error for missing dictionaries dir")
	}
}
