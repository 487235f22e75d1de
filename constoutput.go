// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"fmt"
	"io"
)

// PrintConstants writes one line per constant pool entry to w, resolving
// MethodRef entries to their signature string rather than their raw
// class/name-and-type indices (§4.9, Supplemented Feature 1).
func (cf *ClassFile) PrintConstants(w io.Writer) error {
	refs, err := cf.methodRefs()
	if err != nil {
		return err
	}

	for _, entry := range cf.Constants() {
		line, err := formatConstant(entry, refs)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatConstant(entry ConstEntry, refs MethodRefMap) (string, error) {
	switch v := entry.Value.(type) {
	case UTF8Value:
		return fmt.Sprintf("#%d = UTF8\t\t%s", entry.Index, string(v)), nil

	case IntegerValue:
		return fmt.Sprintf("#%d = Integer\t\t%d", entry.Index, int32(v)), nil

	case ClassValue:
		return fmt.Sprintf("#%d = Class\t\t#%d", entry.Index, v.NameIndex), nil

	case NameAndTypeValue:
		return fmt.Sprintf("#%d = NameAndType\t#%d, #%d", entry.Index, v.NameIndex, v.DescriptorIndex), nil

	case MethodRefValue:
		key, ok := refs.KeyOf(entry.Index)
		if !ok {
			return fmt.Sprintf("#%d = MethodRef\t<unresolved>", entry.Index), nil
		}
		return fmt.Sprintf("#%d = MethodRef\t%s", entry.Index, methodString(key)), nil

	default:
		return fmt.Sprintf("#%d = ?", entry.Index), nil
	}
}
