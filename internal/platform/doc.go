// Package platform defines the adapter contract shared by every supported
// AI coding assistant and the registry that discovers adapters.
//
// An [Adapter] describes one assistant: where its config and instruction
// files live, how its config is encoded, and how its instruction document
// maps to and from the neutral [instruction.Instruction]. Most of the
// contract is implemented by [Base], which concrete adapters embed; they
// override only ParseToUnified and SerializeFromUnified when the assistant
// adds its own header or footer to instruction files.
//
// # Registration
//
// Adapters are listed in a compile-time table of [Registration] values. A
// [Registry] builds them lazily on first use. A factory that fails, panics,
// returns nil, or reports a mismatched name is skipped with a warning so one
// broken adapter never hides the others.
//
//	reg := platform.NewRegistry(builtin.Registrations())
//	for _, d := range reg.DetectPlatforms(projectDir) {
//	    fmt.Println(d.Platform, d.ConfigPath)
//	}
//
// # Thread Safety
//
// Adapters are stateless and the registry guards its cache with a
// read-write mutex, so both are safe for concurrent use.
package platform
