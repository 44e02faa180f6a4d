package model

import (
	"reflect"
	"testing"
)

func TestFlattenTree(t *testing.T) {
	widgets := FlattenTree(sampleTree())
	if len(widgets) != 7 {
		t.Fatalf("expected 7 widgets, got %d", len(widgets))
	}
	if widgets[0].ID != "wnd[0]" || widgets[0].Path != "GuiMainWindow" {
		t.Errorf("unexpected root: %+v", widgets[0])
	}
	okcd := widgets[2]
	if okcd.ID != "wnd[0]/tbar[0]/okcd" {
		t.Fatalf("unexpected order: %+v", okcd)
	}
	if okcd.Path != "GuiMainWindow > GuiToolbar > GuiOkCodeField" {
		t.Errorf("unexpected path: %q", okcd.Path)
	}
}

func TestFilterByType(t *testing.T) {
	widgets := FlattenTree(sampleTree())
	fields := FilterByType(widgets, []string{"GuiTextField"})
	if len(fields) != 2 {
		t.Fatalf("expected 2 text fields, got %d", len(fields))
	}
	for _, w := range fields {
		if w.Type != "GuiTextField" {
			t.Errorf("unexpected type %q", w.Type)
		}
	}
}

func TestFilterByType_Empty(t *testing.T) {
	widgets := FlattenTree(sampleTree())
	if got := FilterByType(widgets, nil); len(got) != len(widgets) {
		t.Errorf("empty filter should keep everything, got %d of %d", len(got), len(widgets))
	}
}

func TestFilterByText(t *testing.T) {
	widgets := FlattenTree(sampleTree())
	got := FilterByText(widgets, "search")
	if len(got) != 1 || got[0].ID != "wnd[0]/usr/btnSEARCH" {
		t.Errorf("unexpected matches: %+v", got)
	}
}

func TestFilterByText_MatchesID(t *testing.T) {
	widgets := FlattenTree(sampleTree())
	got := FilterByText(widgets, "vbak-vbeln")
	if len(got) != 1 || got[0].ID != "wnd[0]/usr/txtVBAK-VBELN" {
		t.Errorf("unexpected matches: %+v", got)
	}
}

func TestExpandTypes(t *testing.T) {
	got := ExpandTypes([]string{"txt", "btn", "GuiShell", "txt"})
	want := []string{"GuiTextField", "GuiButton", "GuiShell"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandTypes = %v, want %v", got, want)
	}
}
