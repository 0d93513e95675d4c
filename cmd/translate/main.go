package main

import (
	"os"

	"horse.fit/translate/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
