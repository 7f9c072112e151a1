package main

import "github.com/mouse-blink/undefender/cmd"

func main() {
	cmd.Execute()
}
