// Command enummessage-vet checks enummessage annotations.
//
//	go vet -vettool=$(which enummessage-vet) ./...
package main

import (
	"github.com/pablor21/enummessage/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
