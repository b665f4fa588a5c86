package main

import "github.com/mkarppi/verso/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
