// Package addmod defines the integer-addition extension module: the
// reference payload carried by the bridge. The domain logic is trivial on
// purpose; the module exists to exercise the full boundary-crossing
// protocol with a pure, side-effect-free native function.
package addmod

import (
	"go.bytecodealliance.org/wit"

	"github.com/hostbind/hostbind/bridge"
)

const (
	// Name is the fixed identifier the host's import mechanism uses.
	Name = "add_module"

	// Doc is the module documentation string.
	Doc = "Module for adding integers"

	// AddDoc is the documentation string of the add function.
	AddDoc = "Adds two integers"
)

// Add is the native function behind the module's single binding. It is
// pure and has no failure modes of its own: it computes in a wider type
// than the declared s32 result, so overflow is detected by the bridge's
// encode step rather than wrapped here.
func Add(a, b int32) int64 {
	return int64(a) + int64(b)
}

// New builds the module descriptor. The version string comes from
// external configuration (build metadata, flags) and must be valid
// semver.
func New(version string) (*bridge.Module, error) {
	return bridge.New(Name).
		Doc(Doc).
		Version(version).
		Func("add", Add,
			bridge.WithParams("a", "b"),
			bridge.WithDoc(AddDoc),
			bridge.WithResult(wit.S32{}),
		).
		Build()
}
