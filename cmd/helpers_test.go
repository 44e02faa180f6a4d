package cmd

import (
	"reflect"
	"testing"
)

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" txt, btn ,,shell ")
	want := []string{"txt", "btn", "shell"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitCSV = %v, want %v", got, want)
	}
}

func TestStringParam(t *testing.T) {
	params := map[string]interface{}{"code": "VA01", "num": 42}
	if got := stringParam(params, "code", ""); got != "VA01" {
		t.Errorf("got %q", got)
	}
	if got := stringParam(params, "num", ""); got != "42" {
		t.Errorf("numeric coercion got %q", got)
	}
	if got := stringParam(params, "missing", "dflt"); got != "dflt" {
		t.Errorf("default got %q", got)
	}
}

func TestIntParam(t *testing.T) {
	params := map[string]interface{}{"a": 3, "b": float64(7), "c": int64(9)}
	for key, want := range map[string]int{"a": 3, "b": 7, "c": 9} {
		if got := intParam(params, key, 0); got != want {
			t.Errorf("%s = %d, want %d", key, got, want)
		}
	}
	if got := intParam(params, "missing", 5); got != 5 {
		t.Errorf("default = %d", got)
	}
}

func TestBoolParam(t *testing.T) {
	params := map[string]interface{}{"yes": true}
	if !boolParam(params, "yes", false) {
		t.Error("expected true")
	}
	if !boolParam(params, "missing", true) {
		t.Error("expected default true")
	}
}

func TestIntSliceParam(t *testing.T) {
	params := map[string]interface{}{
		"list":   []interface{}{0, float64(8), int64(11)},
		"single": 2,
	}
	if got := intSliceParam(params, "list"); !reflect.DeepEqual(got, []int{0, 8, 11}) {
		t.Errorf("list = %v", got)
	}
	if got := intSliceParam(params, "single"); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("single = %v", got)
	}
	if got := intSliceParam(params, "missing"); got != nil {
		t.Errorf("missing = %v", got)
	}
}

func TestCollectFields(t *testing.T) {
	idents, values, err := collectFields(
		[]string{"txtVBAK-VBELN=20000001", "txtKUNNR=1172"},
		"txtA txtB", "1 2",
		false,
	)
	if err != nil {
		t.Fatalf("collectFields failed: %v", err)
	}
	wantIdents := []string{"txtVBAK-VBELN", "txtKUNNR", "txtA", "txtB"}
	wantValues := []string{"20000001", "1172", "1", "2"}
	if !reflect.DeepEqual(idents, wantIdents) {
		t.Errorf("idents = %v, want %v", idents, wantIdents)
	}
	if !reflect.DeepEqual(values, wantValues) {
		t.Errorf("values = %v, want %v", values, wantValues)
	}
}

func TestCollectFields_BadAssignment(t *testing.T) {
	if _, _, err := collectFields([]string{"noequals"}, "", "", false); err == nil {
		t.Error("expected error for malformed --field")
	}
}

func TestCollectFields_ValueWithEquals(t *testing.T) {
	idents, values, err := collectFields([]string{"txtFORMULA=a=b"}, "", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if idents[0] != "txtFORMULA" || values[0] != "a=b" {
		t.Errorf("got %v = %v", idents, values)
	}
}
