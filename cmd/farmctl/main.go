// farmctl es el cliente de terminal de Ternakku: las mismas páginas de la
// app web (lista, alta, edición, borrado con confirmación) sobre la API.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		// los errores de la API ya se mostraron en el diálogo
		var shown *shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
