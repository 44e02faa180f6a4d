package sap

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mj1618/sapgui-cli/internal/scripting/scriptingtest"
)

// formSession builds a session whose main window holds a toolbar command
// field and a user area with a few input fields.
func formSession() *scriptingtest.Session {
	fake := scriptingtest.NewSession("/app/con[0]/ses[0]")
	fake.Root.Kids = []*scriptingtest.Widget{
		{
			WidgetID: "wnd[0]/tbar[0]",
			TypeTag:  "GuiToolbar",
			Kids: []*scriptingtest.Widget{
				{WidgetID: "wnd[0]/tbar[0]/okcd", TypeTag: "GuiOkCodeField"},
			},
		},
		{
			WidgetID: "wnd[0]/usr",
			TypeTag:  "GuiUserArea",
			Kids: []*scriptingtest.Widget{
				{WidgetID: "wnd[0]/usr/txtVBAK-VBELN", TypeTag: "GuiTextField"},
				{WidgetID: "wnd[0]/usr/txtVBAK-ERDAT", TypeTag: "GuiTextField"},
				{WidgetID: "wnd[0]/usr/btnSEARCH", TypeTag: "GuiButton"},
			},
		},
	}
	return fake
}

func TestFindElements_Snapshot(t *testing.T) {
	sess := NewSession(formSession())

	ids, err := sess.FindElements("txtVBAK")
	if err != nil {
		t.Fatalf("FindElements failed: %v", err)
	}
	want := []string{"wnd[0]/usr/txtVBAK-VBELN", "wnd[0]/usr/txtVBAK-ERDAT"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("FindElements = %v, want %v", ids, want)
	}
}

func TestFindElements_NormalizesPathFragments(t *testing.T) {
	sess := NewSession(formSession())

	ids, err := sess.FindElements("usr/txtVBAK-VBELN")
	if err != nil {
		t.Fatalf("FindElements failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "wnd[0]/usr/txtVBAK-VBELN" {
		t.Errorf("FindElements = %v, want the single normalized match", ids)
	}
}

func TestFindElements_LiveFallback(t *testing.T) {
	fake := formSession()
	fake.TreeErr = scriptingtest.ErrInjected
	sess := NewSession(fake)

	ids, err := sess.FindElements("txtVBAK")
	if err != nil {
		t.Fatalf("FindElements failed: %v", err)
	}
	want := []string{"wnd[0]/usr/txtVBAK-VBELN", "wnd[0]/usr/txtVBAK-ERDAT"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("live fallback = %v, want %v", ids, want)
	}
}

func TestFindElements_LiveFallbackSkipsBrokenSubtree(t *testing.T) {
	fake := formSession()
	fake.TreeErr = scriptingtest.ErrInjected
	// The toolbar's children fail to enumerate; the user area still works.
	fake.Root.Kids[0].ChildrenErr = scriptingtest.ErrInjected
	sess := NewSession(fake)

	ids, err := sess.FindElements("txtVBAK")
	if err != nil {
		t.Fatalf("FindElements failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 matches despite broken subtree, got %v", ids)
	}
}

func TestFindElement_Single(t *testing.T) {
	sess := NewSession(formSession())

	element, err := sess.FindElement("btnSEARCH", false)
	if err != nil {
		t.Fatalf("FindElement failed: %v", err)
	}
	id, _ := element.ID()
	if id != "wnd[0]/usr/btnSEARCH" {
		t.Errorf("resolved %q", id)
	}
}

func TestFindElement_NotFound(t *testing.T) {
	sess := NewSession(formSession())

	_, err := sess.FindElement("doesnotexist", false)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Fragment != "doesnotexist" {
		t.Errorf("unexpected fragment %q", notFound.Fragment)
	}
}

func TestFindElement_Ambiguous(t *testing.T) {
	sess := NewSession(formSession())

	_, err := sess.FindElement("txtVBAK", false)
	var ambiguous *AmbiguousMatchError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousMatchError, got %v", err)
	}
	if len(ambiguous.Matches) != 2 {
		t.Errorf("expected 2 matches in error, got %v", ambiguous.Matches)
	}
}

func TestFindElement_AllowMultipleTakesFirst(t *testing.T) {
	sess := NewSession(formSession())

	element, err := sess.FindElement("txtVBAK", true)
	if err != nil {
		t.Fatalf("FindElement failed: %v", err)
	}
	id, _ := element.ID()
	if id != "wnd[0]/usr/txtVBAK-VBELN" {
		t.Errorf("expected first match in traversal order, got %q", id)
	}
}

func TestTree(t *testing.T) {
	sess := NewSession(formSession())

	root, err := sess.Tree()
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}
	if root.Properties.ID != "wnd[0]" {
		t.Errorf("unexpected root %q", root.Properties.ID)
	}
	if len(root.Children) != 2 {
		t.Errorf("expected 2 children, got %d", len(root.Children))
	}
}
