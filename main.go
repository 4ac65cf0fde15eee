package main

import "github.com/darkhz/playerview/cmd"

func main() {
	cmd.Init()
	cmd.Run()
}
