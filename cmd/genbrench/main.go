package main

import (
	"github.com/Hakuto4838/TwoDList.git/cmd/genbrench/app"
)

func main() {
	app.New("genbrench").Run()
}
