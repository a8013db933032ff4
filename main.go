package main

import (
	"os"

	"github.com/tonhe/zgraph/cmd"
)

func main() {
	cmd.Execute(os.Args[1:])
}
