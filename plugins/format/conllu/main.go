// Plugin format-conllu handles CoNLL-U treebank files.
//
// It supports detect, ingest, enumerate, extract-ir, emit-native and lint.
// IR extraction is L1: every field of every token line survives in token
// attributes, and the raw text is kept so emit-native can reproduce the
// original file byte for byte.
package main

import (
	"os"

	"github.com/FocuswithJustin/conllu/internal/logging"
	"github.com/FocuswithJustin/conllu/plugins/ipc"
)

const formatName = "CoNLL-U"

var extensions = []string{".conllu", ".conll"}

func handlers() ipc.Handlers {
	return ipc.Handlers{
		"detect":      handleDetect,
		"ingest":      handleIngest,
		"enumerate":   handleEnumerate,
		"extract-ir":  handleExtractIR,
		"emit-native": handleEmitNative,
		"lint":        handleLint,
	}
}

func main() {
	if err := ipc.Stdio().Serve(handlers()); err != nil {
		logging.PluginError("format-conllu", err)
		os.Exit(1)
	}
}
