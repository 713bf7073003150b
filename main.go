package main

import "github.com/librisys/library-system/cmd"

func main() {
	cmd.Execute()
}
