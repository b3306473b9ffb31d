package mips

import (
	"fmt"
	"io"
)

// WriteLayout prints the storage assigned to every global and to the
// parameters and locals of every function:
//
//	global
//	  count cruxdata.count 4
//	func main stack=8
//	  x local 0 4
//	  y local 4 4
func WriteLayout(w io.Writer, global *GlobalFrame, records []*ActivationRecord) error {
	if _, err := fmt.Fprintln(w, "global"); err != nil {
		return err
	}
	for _, slot := range global.Slots() {
		if _, err := fmt.Fprintf(w, "  %s %s %d\n", slot.Symbol.Name, slot.Label, slot.Size); err != nil {
			return err
		}
	}

	for _, ar := range records {
		if _, err := fmt.Fprintf(w, "func %s stack=%d\n", ar.Name(), ar.StackSize()); err != nil {
			return err
		}
		for _, slot := range ar.Slots() {
			_, err := fmt.Fprintf(w, "  %s %s %d %d\n", slot.Symbol.Name, slot.Kind, slot.Offset, slot.Size)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
