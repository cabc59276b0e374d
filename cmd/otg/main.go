package main

import "github.com/OpenTraceLab/OpenTraceGrid/cmd/otg/cmd"

func main() {
	cmd.Execute()
}
