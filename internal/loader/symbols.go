package loader

import (
	"reflect"

	"evalclient/internal/harness"

	"github.com/traefik/yaegi/interp"
)

// exercisePath is the import path scripts use for the registration package.
const exercisePath = "exercise"

// Symbols is the exercise package as seen from inside the interpreter.
// Scripts reach the harness through *Registrar and nothing else.
var Symbols = interp.Exports{
	exercisePath + "/" + exercisePath: {
		"Registrar": reflect.ValueOf((*harness.Registrar)(nil)),
		"T":         reflect.ValueOf((*harness.T)(nil)),
	},
}
