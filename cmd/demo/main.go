package main

import (
	"github.com/Hakuto4838/TwoDList.git/cmd/demo/app"
)

func main() {
	app.New("demo").Run()
}
