package main

import (
	"github.com/daedaleanai/pnrcore/cmd"
)

func main() {
	cmd.Execute()
}
