package main

import "github.com/mj1618/focusprobe/cmd"

func main() {
	cmd.Execute()
}
