package main

import (
	"os"

	"github.com/llehouerou/tagedit/internal/app"
	"github.com/llehouerou/tagedit/internal/tags"
)

func main() {
	os.Exit(app.Run(os.Args[1:], app.Deps{
		In:    os.Stdin,
		Out:   os.Stdout,
		Store: tags.NewFileStore(),
	}))
}
