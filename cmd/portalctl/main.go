package main

import (
	"os"

	"github.com/talentbridge/portal/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
