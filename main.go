package main

import (
	"github.com/mj1618/uistate/cmd"
	_ "github.com/mj1618/uistate/internal/platform/all"
)

func main() {
	cmd.Execute()
}
