// pkg/env/doc.go

/*
Package env describes the build environment of a CUDA toolkit installation.

It handles:
  - Reading configuration values through an injectable Provider
  - Probing the filesystem through an injectable FileSystem
  - The per-target toolkit layout (include/, lib64/ or lib\x64)
  - Generating compiler and linker flags for a resolved root

Basic Usage:

	tk := env.New("/usr/local/cuda", target)

	flags := tk.GetCompilerFlags(env.DefaultLibrary)
	for _, flag := range flags.LDFLAGS() {
		fmt.Println(flag) // -L/usr/local/cuda/lib64, -lcuda
	}

	if lib := tk.FindSharedLibrary(env.OSFileSystem(), "cuda"); lib != nil {
		fmt.Printf("Found: %s at %s\n", lib.Name, lib.Path)
	}

Target Layouts:

Paths are always built for the target triple rather than the host, so a
Windows toolkit layout (lib\x64) can be computed and tested on Linux.
*/
package env
