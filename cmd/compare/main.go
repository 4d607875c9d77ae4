package main

import (
	"github.com/Hakuto4838/TwoDList.git/cmd/compare/app"
)

func main() {
	app.New("compare").Run()
}
