// Package main provides the bfvm command line.
//
// Usage:
//
//	bfvm run hello.bf                 # Execute a source file
//	bfvm run -e '++++++[>++++++<-]>.' # Execute inline source
//	bfvm debug hello.bf               # Step through with machine dumps
//	bfvm compile hello.bf             # Compile to bytecode (.bfbc)
//	bfvm exec hello.bfbc              # Execute compiled bytecode
//	bfvm disasm hello.bfbc            # Disassemble bytecode
//	bfvm encode hello.bf -o hello.png # Draw a program as an image
//	bfvm decode hello.png --run       # Read a program from an image
//	bfvm trace hello.png -o trace.png # Render the decoder's path
//	bfvm repl                         # Interactive session
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Version info set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
