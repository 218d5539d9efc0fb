package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// tests run from the module root so relative paths (logs/, *.db) land in one place
	//
	//   import (
	//     _ "liyu1981.xyz/telemonitoring-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
}
