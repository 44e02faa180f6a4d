package model

import (
	"reflect"
	"testing"
)

func sampleTree() Widget {
	return Widget{
		Properties: Properties{ID: "wnd[0]", Type: "GuiMainWindow"},
		Children: []Widget{
			{
				Properties: Properties{ID: "wnd[0]/tbar[0]", Type: "GuiToolbar"},
				Children: []Widget{
					{Properties: Properties{ID: "wnd[0]/tbar[0]/okcd", Type: "GuiOkCodeField"}},
				},
			},
			{
				Properties: Properties{ID: "wnd[0]/usr", Type: "GuiUserArea"},
				Children: []Widget{
					{Properties: Properties{ID: "wnd[0]/usr/txtVBAK-VBELN", Type: "GuiTextField", Text: "20000001"}},
					{Properties: Properties{ID: "wnd[0]/usr/txtVBAK-ERDAT", Type: "GuiTextField"}},
					{Properties: Properties{ID: "wnd[0]/usr/btnSEARCH", Type: "GuiButton", Text: "Search"}},
				},
			},
		},
	}
}

func TestSearchTree_SubstringMatch(t *testing.T) {
	ids := SearchTree(sampleTree(), "txtVBAK")
	want := []string{"wnd[0]/usr/txtVBAK-VBELN", "wnd[0]/usr/txtVBAK-ERDAT"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("SearchTree returned %v, want %v", ids, want)
	}
}

func TestSearchTree_ParentBeforeChild(t *testing.T) {
	ids := SearchTree(sampleTree(), "tbar[0]")
	want := []string{"wnd[0]/tbar[0]", "wnd[0]/tbar[0]/okcd"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("SearchTree returned %v, want %v", ids, want)
	}
}

func TestSearchTree_CaseSensitive(t *testing.T) {
	if ids := SearchTree(sampleTree(), "TXTVBAK"); len(ids) != 0 {
		t.Errorf("expected no matches for wrong case, got %v", ids)
	}
}

func TestSearchTree_NoMatch(t *testing.T) {
	if ids := SearchTree(sampleTree(), "doesnotexist"); len(ids) != 0 {
		t.Errorf("expected no matches, got %v", ids)
	}
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"bare_fragment_unchanged", "okcd", "okcd"},
		{"full_path_unchanged", "wnd[0]/usr/txtNAME", "wnd[0]/usr/txtNAME"},
		{"other_window_unchanged", "wnd[1]/usr/txtNAME", "wnd[1]/usr/txtNAME"},
		{"usr_gets_window", "usr/txtNAME", "wnd[0]/usr/txtNAME"},
		{"tbar_gets_window", "tbar[0]/okcd", "wnd[0]/tbar[0]/okcd"},
		{"mbar_gets_window", "mbar/menu[0]", "wnd[0]/mbar/menu[0]"},
		{"sbar_gets_window", "sbar/pane[0]", "wnd[0]/sbar/pane[0]"},
		{"titl_gets_window", "titl/text", "wnd[0]/titl/text"},
		{"plain_path_gets_user_area", "txtNAME/shell", "wnd[0]/usr/txtNAME/shell"},
		{"usrprefix_not_area", "usrCustom/txt", "wnd[0]/usr/usrCustom/txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.fragment); got != tt.want {
				t.Errorf("NormalizeID(%q) = %q, want %q", tt.fragment, got, tt.want)
			}
		})
	}
}

func TestParseTree(t *testing.T) {
	data := []byte(`{
		"properties": {"Id": "wnd[0]", "Type": "GuiMainWindow"},
		"children": [
			{"properties": {"Id": "wnd[0]/usr", "Type": "GuiUserArea"}}
		]
	}`)
	root, err := ParseTree(data)
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}
	if root.Properties.ID != "wnd[0]" {
		t.Errorf("root id = %q, want wnd[0]", root.Properties.ID)
	}
	if len(root.Children) != 1 || root.Children[0].Properties.ID != "wnd[0]/usr" {
		t.Errorf("unexpected children: %+v", root.Children)
	}
}

func TestParseTree_Invalid(t *testing.T) {
	if _, err := ParseTree([]byte("not json")); err == nil {
		t.Error("expected error for invalid snapshot")
	}
}
