package main

import (
	"github.com/Hakuto4838/TwoDList.git/cmd/benchrun/app"
)

func main() {
	app.New("benchrun").Run()
}
