package main

import "github.com/meera-dev/stylescrap/cmd"

func main() {
	cmd.Execute()
}
