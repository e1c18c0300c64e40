// Package cli contains the interactive terminal views. It is a pure
// consumer of internal/core: every piece of state it renders lives on the
// panel controller, and every keypress maps onto one controller operation.
package cli
