//go:build windows

package ole

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// getString reads a string property from a dispatch object.
func getString(disp *ole.IDispatch, name string) (string, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", name, err)
	}
	defer v.Clear()
	return v.ToString(), nil
}

// getInt reads an integer property from a dispatch object.
func getInt(disp *ole.IDispatch, name string) (int, error) {
	v, err := oleutil.GetProperty(disp, name)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", name, err)
	}
	defer v.Clear()
	switch n := v.Value().(type) {
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("get %s: unexpected type %T", name, v.Value())
	}
}

// eachItem iterates a scripting collection (Count property, Item method) and
// calls fn with every element's dispatch. fn borrows the dispatch; it must
// AddRef to retain it past the callback.
func eachItem(collection *ole.IDispatch, fn func(item *ole.IDispatch) error) error {
	count, err := getInt(collection, "Count")
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		v, err := oleutil.CallMethod(collection, "Item", i)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		item := v.ToIDispatch()
		if item == nil {
			v.Clear()
			return fmt.Errorf("item %d: nil dispatch", i)
		}
		if err := fn(item); err != nil {
			v.Clear()
			return err
		}
		v.Clear()
	}
	return nil
}

// callDispatch invokes a method expected to return a dispatch object and
// fails when the result is nil.
func callDispatch(disp *ole.IDispatch, name string, args ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(disp, name, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	result := v.ToIDispatch()
	if result == nil {
		v.Clear()
		return nil, fmt.Errorf("%s: nil dispatch", name)
	}
	return result, nil
}
